package words

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MysticalShroom/typespeed/internal/model"
)

// DefaultAPIBaseURL is the random-word endpoint used when none is configured.
const DefaultAPIBaseURL = "https://random-word-api.herokuapp.com/word"

// Requesting more words than needed leaves headroom for band filtering.
const apiFetchFactor = 4

const maxResponseBytes = 1 << 20

// APILoader fetches words from an HTTP endpoint returning a JSON string array.
type APILoader struct {
	baseURL string
	client  *http.Client
}

// NewAPILoader builds an APILoader with the given endpoint and timeout.
func NewAPILoader(baseURL string, timeout time.Duration) *APILoader {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	return &APILoader{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Load fetches words and keeps the first count that fit the difficulty band.
func (l *APILoader) Load(ctx context.Context, difficulty model.Difficulty, count int) (string, error) {
	if err := validateRequest(difficulty, count); err != nil {
		return "", err
	}
	fetched, err := l.fetch(ctx, count*apiFetchFactor)
	if err != nil {
		return "", err
	}
	selected := make([]string, 0, count)
	for _, word := range fetched {
		word = strings.ToLower(strings.TrimSpace(word))
		if !InBand(difficulty, word) {
			continue
		}
		selected = append(selected, word)
		if len(selected) == count {
			break
		}
	}
	if len(selected) < count {
		return "", fmt.Errorf("api returned %d usable words for %s, need %d", len(selected), difficulty, count)
	}
	return strings.Join(selected, " "), nil
}

func (l *APILoader) fetch(ctx context.Context, number int) ([]string, error) {
	endpoint, err := url.Parse(l.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	query := endpoint.Query()
	query.Set("number", strconv.Itoa(number))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			// Best-effort body close.
			_ = cerr
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var words []string
	if err := json.Unmarshal(body, &words); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty response")
	}
	return words, nil
}
