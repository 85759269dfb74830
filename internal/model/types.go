// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty selects the word length band for a test.
type Difficulty string

// Supported difficulties.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyRandom Difficulty = "random"
)

// Difficulties lists all difficulties in menu order.
var Difficulties = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
	DifficultyRandom,
}

// ParseDifficulty converts a user-supplied string into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.TrimSpace(strings.ToLower(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	case DifficultyRandom:
		return DifficultyRandom, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (easy, medium, hard, random)", s)
}

// Title returns the difficulty with the first letter capitalized.
func (d Difficulty) Title() string {
	s := string(d)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Word count bounds for a single test.
const (
	MinWords = 5
	MaxWords = 50
)

// Options carries the resolved runtime settings for a test run.
type Options struct {
	Words       int
	ResultsPath string
	APIBaseURL  string
	APITimeout  time.Duration
	Offline     bool
	WordsDir    string
}

// ResultRecord captures one completed test. It is created once when a test
// finishes and is never mutated afterwards.
type ResultRecord struct {
	FinishedAt time.Time
	Difficulty Difficulty
	Words      int
	WPM        float64
	Accuracy   float64
	Errors     int
	Duration   time.Duration
}

// HistoryFilter narrows history queries for the stats command.
type HistoryFilter struct {
	Difficulty Difficulty
	Since      *time.Time
	Last       int
}
