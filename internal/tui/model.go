// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MysticalShroom/typespeed/internal/model"
	"github.com/MysticalShroom/typespeed/internal/results"
	statsPkg "github.com/MysticalShroom/typespeed/internal/stats"
	"github.com/MysticalShroom/typespeed/internal/store"
	"github.com/MysticalShroom/typespeed/internal/words"
)

type screen int

const (
	screenDifficulty screen = iota
	screenWordCount
	screenLoading
	screenTyping
	screenResults
)

type textLoadedMsg struct {
	text string
	err  error
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	infoStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FB3B3"))
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	promptStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea typing test UI. It owns the session state
// for its whole lifetime; nothing else mutates it.
type Model struct {
	opts    model.Options
	loader  words.Loader
	log     *results.Log
	history *store.Store

	width  int
	height int

	scr        screen
	difficulty model.Difficulty

	countInput textinput.Model
	countErr   string
	wordCount  int

	targetRunes []rune
	inputRunes  []rune
	errorCount  int
	started     bool
	startedAt   time.Time

	lastResult model.ResultRecord
	saveNotice string
}

// NewModel constructs the typing test model. history may be nil when the
// local database could not be opened.
func NewModel(opts model.Options, loader words.Loader, log *results.Log, history *store.Store) *Model {
	input := textinput.New()
	input.Prompt = "Words: "
	input.CharLimit = 2
	input.Cursor.SetMode(cursor.CursorBlink)
	if opts.Words >= model.MinWords && opts.Words <= model.MaxWords {
		input.SetValue(strconv.Itoa(opts.Words))
	}
	input.Focus()
	return &Model{
		opts:       opts,
		loader:     loader,
		log:        log,
		history:    history,
		scr:        screenDifficulty,
		countInput: input,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case textLoadedMsg:
		if m.scr != screenLoading {
			return m, nil
		}
		if msg.err != nil || msg.text == "" {
			logErrf("failed to load words: %v\n", msg.err)
			return m, tea.Quit
		}
		m.beginTest(msg.text)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch m.scr {
		case screenDifficulty:
			return m.updateDifficulty(msg)
		case screenWordCount:
			return m.updateWordCount(msg)
		case screenTyping:
			return m.updateTyping(msg)
		case screenResults:
			return m.updateResults(msg)
		default:
			return m, nil
		}
	default:
		return m, nil
	}
}

func (m *Model) updateDifficulty(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}
	idx := int(msg.Runes[0] - '1')
	if idx < 0 || idx >= len(model.Difficulties) {
		return m, nil
	}
	m.difficulty = model.Difficulties[idx]
	m.countErr = ""
	m.scr = screenWordCount
	return m, textinput.Blink
}

func (m *Model) updateWordCount(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		count, err := strconv.Atoi(strings.TrimSpace(m.countInput.Value()))
		if err != nil || count < model.MinWords || count > model.MaxWords {
			m.countErr = fmt.Sprintf("Enter a number between %d and %d.", model.MinWords, model.MaxWords)
			return m, nil
		}
		m.countErr = ""
		m.wordCount = count
		m.scr = screenLoading
		return m, m.loadTextCmd()
	case tea.KeySpace:
		return m, nil
	case tea.KeyRunes:
		digits := make([]rune, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r >= '0' && r <= '9' {
				digits = append(digits, r)
			}
		}
		if len(digits) == 0 {
			return m, nil
		}
		msg.Runes = digits
	}
	var cmd tea.Cmd
	m.countInput, cmd = m.countInput.Update(msg)
	return m, cmd
}

func (m *Model) loadTextCmd() tea.Cmd {
	loader := m.loader
	difficulty := m.difficulty
	count := m.wordCount
	return func() tea.Msg {
		text, err := loader.Load(context.Background(), difficulty, count)
		return textLoadedMsg{text: text, err: err}
	}
}

func (m *Model) beginTest(text string) {
	m.targetRunes = []rune(text)
	m.resetRun()
	m.scr = screenTyping
}

// resetRun clears the per-attempt state but keeps the target text, so a
// retry replays the identical text.
func (m *Model) resetRun() {
	m.inputRunes = nil
	m.errorCount = 0
	m.started = false
	m.startedAt = time.Time{}
	m.saveNotice = ""
}

func (m *Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		m.handleBackspace()
	case tea.KeySpace:
		m.handleRunes([]rune{' '})
	case tea.KeyRunes:
		m.handleRunes(msg.Runes)
	}
	return m, nil
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		if len(m.inputRunes) >= len(m.targetRunes) {
			return
		}
		if !m.started {
			// The clock starts on the first keystroke, not on screen entry.
			m.started = true
			m.startedAt = time.Now()
		}
		if r != m.targetRunes[len(m.inputRunes)] {
			m.errorCount++
		}
		m.inputRunes = append(m.inputRunes, r)
		if len(m.inputRunes) == len(m.targetRunes) {
			m.finishTest()
			return
		}
	}
}

func (m *Model) handleBackspace() {
	if len(m.inputRunes) == 0 {
		return
	}
	last := len(m.inputRunes) - 1
	if m.inputRunes[last] != m.targetRunes[last] && m.errorCount > 0 {
		m.errorCount--
	}
	m.inputRunes = m.inputRunes[:last]
}

func (m *Model) finishTest() {
	finishedAt := time.Now()
	duration := finishedAt.Sub(m.startedAt)
	rec := model.ResultRecord{
		FinishedAt: finishedAt,
		Difficulty: m.difficulty,
		Words:      m.wordCount,
		WPM:        statsPkg.WPM(len(m.inputRunes), duration),
		Accuracy:   statsPkg.Accuracy(len(m.targetRunes), m.errorCount),
		Errors:     m.errorCount,
		Duration:   duration,
	}
	m.lastResult = rec
	m.saveNotice = ""
	if err := m.log.Append(rec); err != nil {
		m.saveNotice = fmt.Sprintf("Could not save results: %v", err)
		logErrf("failed to append result: %v\n", err)
	}
	if m.history != nil {
		if _, err := m.history.InsertResult(context.Background(), rec); err != nil {
			logErrf("failed to record history: %v\n", err)
		}
	}
	m.scr = screenResults
}

func (m *Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		switch msg.Runes[0] {
		case 'r', 'R':
			m.resetRun()
			m.scr = screenTyping
			return m, nil
		case 'n', 'N':
			m.targetRunes = nil
			m.resetRun()
			m.countErr = ""
			m.scr = screenDifficulty
			return m, nil
		}
	}
	return m, tea.Quit
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.scr {
	case screenDifficulty:
		content = m.viewDifficulty()
	case screenWordCount:
		content = m.viewWordCount()
	case screenLoading:
		content = infoStyle.Render("Loading words...")
	case screenTyping:
		content = m.viewTyping()
	case screenResults:
		content = m.viewResults()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewDifficulty() string {
	lines := []string{
		titleStyle.Render("Select difficulty:"),
		"",
	}
	labels := []string{"Easy", "Medium", "Hard", "Random (Mixed Lengths)"}
	for i, label := range labels {
		lines = append(lines, infoStyle.Render(fmt.Sprintf("%d. %s", i+1, label)))
	}
	lines = append(lines, "", promptStyle.Render("Press 1, 2, 3, or 4 (Esc to quit)"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewWordCount() string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("How many words? (%d-%d)", model.MinWords, model.MaxWords)),
		infoStyle.Render("Difficulty: " + m.difficulty.Title()),
		"",
		m.countInput.View(),
	}
	if m.countErr != "" {
		lines = append(lines, incorrectStyle.Render(m.countErr))
	}
	lines = append(lines, "", promptStyle.Render("Enter to start (Esc to quit)"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewTyping() string {
	header := m.renderHeader()
	cursorIndex := -1
	if len(m.inputRunes) < len(m.targetRunes) {
		cursorIndex = len(m.inputRunes)
	}
	cells := buildStyledCells(m.targetRunes, m.inputRunes, cursorIndex)
	body := renderCells(cells)
	if m.width > 0 {
		contentWidth := int(float64(m.width) * 0.70)
		if contentWidth < 1 {
			contentWidth = 1
		}
		body = lipgloss.NewStyle().Width(contentWidth).Render(wrapCells(cells, contentWidth))
	}
	return header + "\n\n" + body
}

func (m *Model) renderHeader() string {
	line1 := infoStyle.Render(fmt.Sprintf("Diff: %s  Words: %d", m.difficulty.Title(), m.wordCount))
	elapsedStr := "Waiting..."
	wpm := 0.0
	errors := m.errorCount
	if m.started {
		elapsed := time.Since(m.startedAt)
		elapsedStr = fmt.Sprintf("%ds", int(elapsed.Seconds()))
		wpm = statsPkg.WPM(len(m.inputRunes), elapsed)
	}
	line2 := infoStyle.Render(fmt.Sprintf("Time: %s  Errors: %d  WPM: %.1f", elapsedStr, errors, wpm))
	return line1 + "\n" + line2
}

func (m *Model) viewResults() string {
	rec := m.lastResult
	lines := []string{
		titleStyle.Render("--- Test Complete! ---"),
		"",
		fmt.Sprintf("WPM: %.1f | Accuracy: %.1f%% (%d err) | Time: %.1fs",
			rec.WPM, rec.Accuracy, rec.Errors, rec.Duration.Seconds()),
	}
	if m.saveNotice != "" {
		lines = append(lines, noticeStyle.Render(m.saveNotice))
	}
	lines = append(lines, "", promptStyle.Render("R: Retry | N: New Test | Any other key: Quit"))
	return strings.Join(lines, "\n")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
