package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MysticalShroom/typespeed/internal/model"
)

func sampleRecord() model.ResultRecord {
	return model.ResultRecord{
		FinishedAt: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC),
		Difficulty: model.DifficultyEasy,
		Words:      5,
		WPM:        8,
		Accuracy:   100,
		Errors:     0,
		Duration:   30 * time.Second,
	}
}

func TestFormatLineFieldOrder(t *testing.T) {
	line := FormatLine(sampleRecord())
	want := "Timestamp: 2026-08-01 10:30:00, Difficulty: Easy, Word count: 5, WPM: 8.0, Accuracy: 100.0%, Errors: 0, Time: 30.0s"
	if line != want {
		t.Fatalf("unexpected line:\n got %q\nwant %q", line, want)
	}
}

func TestAppendCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "typing_results.txt")
	log := NewLog(path)

	if err := log.Append(sampleRecord()); err != nil {
		t.Fatalf("first append: %v", err)
	}
	second := sampleRecord()
	second.Errors = 2
	second.Accuracy = 90
	if err := log.Append(second); err != nil {
		t.Fatalf("second append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read results: %v", err)
	}
	content := string(data)
	if !strings.HasSuffix(content, "\n") {
		t.Fatalf("results file must be newline-terminated")
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Errors: 0") {
		t.Fatalf("first line overwritten: %q", lines[0])
	}
	if !strings.Contains(lines[1], "Errors: 2") {
		t.Fatalf("second line missing: %q", lines[1])
	}
}

func TestAppendFailureSurfacesError(t *testing.T) {
	dir := t.TempDir()
	// A directory at the target path makes the open fail.
	log := NewLog(dir)
	if err := log.Append(sampleRecord()); err == nil {
		t.Fatalf("expected append to fail when path is a directory")
	}
}
