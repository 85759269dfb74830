package words

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MysticalShroom/typespeed/internal/model"
)

// FolderLoader reads easy.txt, medium.txt, and hard.txt (one word per line)
// from a local directory.
type FolderLoader struct {
	rnd *rand.Rand
	dir string
}

// NewFolderLoader builds a loader over the given directory.
func NewFolderLoader(dir string) *FolderLoader {
	return &FolderLoader{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		dir: dir,
	}
}

// Load samples count words from the difficulty's file. Random draws from all
// readable files combined. Over-capacity requests cycle the shuffled list.
func (l *FolderLoader) Load(_ context.Context, difficulty model.Difficulty, count int) (string, error) {
	if err := validateRequest(difficulty, count); err != nil {
		return "", err
	}
	pool, err := l.pool(difficulty)
	if err != nil {
		return "", err
	}
	if len(pool) == 0 {
		return "", fmt.Errorf("no words for difficulty %s in %s", difficulty, l.dir)
	}
	return strings.Join(sampleWords(l.rnd, pool, count), " "), nil
}

func (l *FolderLoader) pool(difficulty model.Difficulty) ([]string, error) {
	if difficulty != model.DifficultyRandom {
		return readWordFile(l.fileFor(difficulty))
	}
	var combined []string
	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		words, err := readWordFile(l.fileFor(d))
		if err != nil {
			logErrf("skipping word file for %s: %v\n", d, err)
			continue
		}
		combined = append(combined, words...)
	}
	if len(combined) == 0 {
		return nil, fmt.Errorf("no readable word files in %s", l.dir)
	}
	return combined, nil
}

func (l *FolderLoader) fileFor(difficulty model.Difficulty) string {
	return filepath.Join(l.dir, string(difficulty)+".txt")
}

func readWordFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s is empty", path)
	}
	return words, nil
}
