// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"github.com/mattn/go-runewidth"
)

// charState classifies one target position against the typed input.
type charState int

const (
	statePending charState = iota
	stateCorrect
	stateIncorrect
)

// judgeRunes compares the typed input against the target, position by
// position. Positions beyond the input are pending.
func judgeRunes(target, input []rune) []charState {
	states := make([]charState, len(target))
	for i := range target {
		switch {
		case i >= len(input):
			states[i] = statePending
		case input[i] == target[i]:
			states[i] = stateCorrect
		default:
			states[i] = stateIncorrect
		}
	}
	return states
}

type styledCell struct {
	s       string
	width   int
	isSpace bool
}

// buildStyledCells turns judgments into renderable cells. Mistyped spaces
// display as a bullet so the miss stays visible; other positions keep the
// target rune. The current pending word and the cursor cell get highlights.
func buildStyledCells(target, input []rune, cursorIndex int) []styledCell {
	states := judgeRunes(target, input)
	words := findWords(target)
	currentWord := wordForCursor(words, cursorIndex)

	out := make([]styledCell, 0, len(target))
	for i, r := range target {
		displayed := r
		style := pendingStyle
		switch states[i] {
		case stateCorrect:
			style = correctStyle
		case stateIncorrect:
			style = incorrectStyle
			if r == ' ' {
				displayed = '•'
			}
		case statePending:
			if r != ' ' && currentWord != nil && i >= currentWord.start && i < currentWord.end {
				style = currentWordStyle
			}
		}
		if i == cursorIndex && i >= len(input) {
			style = style.Underline(true)
		}
		out = append(out, styledCell{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: r == ' ',
		})
	}
	return out
}

type wordRange struct {
	start int
	end   int
}

func findWords(target []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range target {
		if r == ' ' {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(target)})
	}
	return words
}

func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	if len(words) == 0 {
		return nil
	}
	if cursorIndex < 0 {
		return &words[0]
	}
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return &words[len(words)-1]
}
