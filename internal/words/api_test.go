package words

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/MysticalShroom/typespeed/internal/model"
)

func newWordServer(t *testing.T, pool []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		number, err := strconv.Atoi(r.URL.Query().Get("number"))
		if err != nil || number <= 0 {
			http.Error(w, "bad number", http.StatusBadRequest)
			return
		}
		out := make([]string, number)
		for i := range out {
			out[i] = pool[i%len(pool)]
		}
		if err := json.NewEncoder(w).Encode(out); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
}

func TestAPILoaderFiltersBand(t *testing.T) {
	server := newWordServer(t, []string{"cat", "python", "algorithm", "dog", "simple"})
	defer server.Close()

	loader := NewAPILoader(server.URL, time.Second)
	text, err := loader.Load(context.Background(), model.DifficultyEasy, 6)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tokens := strings.Fields(text)
	if len(tokens) != 6 {
		t.Fatalf("expected 6 tokens, got %d", len(tokens))
	}
	for _, word := range tokens {
		if !InBand(model.DifficultyEasy, word) {
			t.Fatalf("word %q outside easy band", word)
		}
	}
}

func TestAPILoaderErrorsWhenBandUnderfilled(t *testing.T) {
	server := newWordServer(t, []string{"algorithm", "interface"})
	defer server.Close()

	loader := NewAPILoader(server.URL, time.Second)
	if _, err := loader.Load(context.Background(), model.DifficultyEasy, 5); err == nil {
		t.Fatalf("expected error when no band words are available")
	}
}

func TestAPILoaderErrorsOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	loader := NewAPILoader(server.URL, time.Second)
	if _, err := loader.Load(context.Background(), model.DifficultyEasy, 5); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestAPILoaderErrorsOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte("not json")); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	loader := NewAPILoader(server.URL, time.Second)
	if _, err := loader.Load(context.Background(), model.DifficultyEasy, 5); err == nil {
		t.Fatalf("expected error on malformed response")
	}
}

func TestFallbackRecoversAPIFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	loader := WithFallback(NewAPILoader(server.URL, time.Second), NewBuiltinLoader())
	text, err := loader.Load(context.Background(), model.DifficultyMedium, 10)
	if err != nil {
		t.Fatalf("fallback load: %v", err)
	}
	if len(strings.Fields(text)) != 10 {
		t.Fatalf("expected 10 tokens, got %q", text)
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	server := newWordServer(t, []string{"cat", "dog", "run", "big", "red"})
	defer server.Close()

	loader := WithFallback(NewAPILoader(server.URL, time.Second), NewBuiltinLoader())
	text, err := loader.Load(context.Background(), model.DifficultyEasy, 5)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, word := range strings.Fields(text) {
		switch word {
		case "cat", "dog", "run", "big", "red":
		default:
			t.Fatalf("unexpected word %q, primary should have served the request", word)
		}
	}
}
