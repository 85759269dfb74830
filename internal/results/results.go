// Package results appends completed test results to a flat text file.
package results

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/MysticalShroom/typespeed/internal/model"
)

// Log writes one human-readable line per completed test. The file is
// created on first use and only ever appended to.
type Log struct {
	path string
}

// NewLog returns a Log targeting the given file path.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the target file path.
func (l *Log) Path() string {
	return l.path
}

// Append writes the record as a single newline-terminated line.
func (l *Log) Append(rec model.ResultRecord) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open results file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close after append.
			_ = cerr
		}
	}()
	if _, err := file.WriteString(FormatLine(rec) + "\n"); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// FormatLine renders a record with fields in fixed order: timestamp,
// difficulty, word count, WPM, accuracy, errors, duration.
func FormatLine(rec model.ResultRecord) string {
	return fmt.Sprintf(
		"Timestamp: %s, Difficulty: %s, Word count: %d, WPM: %.1f, Accuracy: %.1f%%, Errors: %d, Time: %.1fs",
		rec.FinishedAt.Format("2006-01-02 15:04:05"),
		rec.Difficulty.Title(),
		rec.Words,
		rec.WPM,
		rec.Accuracy,
		rec.Errors,
		rec.Duration.Seconds(),
	)
}
