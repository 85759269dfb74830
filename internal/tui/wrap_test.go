package tui

import (
	"strings"
	"testing"
)

func plainCells(text string) []styledCell {
	cells := make([]styledCell, 0, len(text))
	for _, r := range text {
		cells = append(cells, styledCell{s: string(r), width: 1, isSpace: r == ' '})
	}
	return cells
}

func TestWrapCellsBreaksAtSpaces(t *testing.T) {
	cells := plainCells("cat dog run")
	out := wrapCells(cells, 7)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if lines[0] != "cat" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != "dog run" {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}

func TestWrapCellsHardBreaksLongWord(t *testing.T) {
	cells := plainCells("abcdefgh")
	out := wrapCells(cells, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out)
	}
	for _, line := range lines {
		if len(line) > 3 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
}

func TestWrapCellsZeroWidthPassthrough(t *testing.T) {
	cells := plainCells("cat dog")
	if out := wrapCells(cells, 0); out != "cat dog" {
		t.Fatalf("expected passthrough, got %q", out)
	}
}

func TestWrapCellsNoTrailingNewline(t *testing.T) {
	cells := plainCells("cat dog run big")
	out := wrapCells(cells, 7)
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("wrapped output should not end with newline: %q", out)
	}
}
