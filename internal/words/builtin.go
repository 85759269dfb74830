package words

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/MysticalShroom/typespeed/internal/model"
)

//go:embed data/easy.txt
var easyWords string

//go:embed data/medium.txt
var mediumWords string

//go:embed data/hard.txt
var hardWords string

// BuiltinLoader serves words from lists compiled into the binary. It always
// succeeds for valid requests and anchors the fallback chain.
type BuiltinLoader struct {
	rnd  *rand.Rand
	sets map[model.Difficulty][]string
}

// NewBuiltinLoader returns a loader over the embedded word lists.
func NewBuiltinLoader() *BuiltinLoader {
	return &BuiltinLoader{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		sets: map[model.Difficulty][]string{
			model.DifficultyEasy:   splitWordList(easyWords),
			model.DifficultyMedium: splitWordList(mediumWords),
			model.DifficultyHard:   splitWordList(hardWords),
		},
	}
}

// Load samples count words for the difficulty. Random draws from all lists
// combined. When count exceeds the list size the shuffled list is cycled, so
// the result always has exactly count words.
func (l *BuiltinLoader) Load(_ context.Context, difficulty model.Difficulty, count int) (string, error) {
	if err := validateRequest(difficulty, count); err != nil {
		return "", err
	}
	pool := l.pool(difficulty)
	if len(pool) == 0 {
		return "", fmt.Errorf("no built-in words for difficulty %s", difficulty)
	}
	return strings.Join(sampleWords(l.rnd, pool, count), " "), nil
}

func (l *BuiltinLoader) pool(difficulty model.Difficulty) []string {
	if difficulty != model.DifficultyRandom {
		return l.sets[difficulty]
	}
	var combined []string
	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		combined = append(combined, l.sets[d]...)
	}
	return combined
}

// sampleWords picks count words without replacement, cycling the shuffled
// pool once it is exhausted.
func sampleWords(rnd *rand.Rand, pool []string, count int) []string {
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	out := make([]string, count)
	for i := 0; i < count; i++ {
		out[i] = shuffled[i%len(shuffled)]
	}
	return out
}

func splitWordList(raw string) []string {
	var words []string
	for _, line := range strings.Split(raw, "\n") {
		word := strings.ToLower(strings.TrimSpace(line))
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words
}
