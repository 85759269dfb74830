// Package words supplies target text for typing tests.
package words

import (
	"context"
	"fmt"
	"os"

	"github.com/MysticalShroom/typespeed/internal/model"
)

// Loader produces a space-joined string of count words for a difficulty.
type Loader interface {
	Load(ctx context.Context, difficulty model.Difficulty, count int) (string, error)
}

// FallbackLoader tries a primary loader and falls back on any error.
type FallbackLoader struct {
	primary  Loader
	fallback Loader
}

// WithFallback wraps primary so that failures are recovered by fallback.
func WithFallback(primary, fallback Loader) *FallbackLoader {
	return &FallbackLoader{primary: primary, fallback: fallback}
}

// Load returns the primary result, or the fallback result after logging the
// primary failure to stderr.
func (l *FallbackLoader) Load(ctx context.Context, difficulty model.Difficulty, count int) (string, error) {
	text, err := l.primary.Load(ctx, difficulty, count)
	if err == nil {
		return text, nil
	}
	logErrf("word source unavailable, using fallback: %v\n", err)
	return l.fallback.Load(ctx, difficulty, count)
}

// InBand reports whether a word belongs to the difficulty's length band.
func InBand(difficulty model.Difficulty, word string) bool {
	n := len([]rune(word))
	if n == 0 {
		return false
	}
	switch difficulty {
	case model.DifficultyEasy:
		return n <= 4
	case model.DifficultyMedium:
		return n >= 5 && n <= 7
	case model.DifficultyHard:
		return n >= 8
	default:
		return true
	}
}

func validateRequest(difficulty model.Difficulty, count int) error {
	if count <= 0 {
		return fmt.Errorf("word count must be positive, got %d", count)
	}
	if _, err := model.ParseDifficulty(string(difficulty)); err != nil {
		return err
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
