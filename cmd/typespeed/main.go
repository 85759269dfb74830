// Package main provides the CLI entrypoint for typespeed.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/MysticalShroom/typespeed/internal/config"
	"github.com/MysticalShroom/typespeed/internal/model"
	"github.com/MysticalShroom/typespeed/internal/results"
	"github.com/MysticalShroom/typespeed/internal/stats"
	"github.com/MysticalShroom/typespeed/internal/store"
	"github.com/MysticalShroom/typespeed/internal/tui"
	"github.com/MysticalShroom/typespeed/internal/words"
)

const (
	defaultWords      = 25
	defaultAPITimeout = "5s"
)

var (
	playWords      int
	playResults    string
	playAPIURL     string
	playAPITimeout string
	playOffline    bool
	playWordsDir   string

	statsDifficulty string
	statsSince      string
	statsLast       int

	sampleDifficulty string
	sampleCount      int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typespeed",
		Short:         "Terminal typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().IntVar(&playWords, "words", defaultWords, "prefill for the word count prompt")
	rootCmd.PersistentFlags().StringVar(&playResults, "results-file", "", "path of the flat results file")
	rootCmd.PersistentFlags().StringVar(&playAPIURL, "api-url", words.DefaultAPIBaseURL, "random word API endpoint")
	rootCmd.PersistentFlags().StringVar(&playAPITimeout, "api-timeout", defaultAPITimeout, "word API request timeout")
	rootCmd.PersistentFlags().BoolVar(&playOffline, "offline", false, "skip the word API and use local lists")
	rootCmd.PersistentFlags().StringVar(&playWordsDir, "words-dir", "", "folder with easy.txt, medium.txt, hard.txt word lists")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	loader := buildLoader(opts)
	log := results.NewLog(opts.ResultsPath)

	var history *store.Store
	historyPath := config.DefaultDBPath()
	history, err = store.Open(historyPath)
	if err != nil {
		logErrf("history unavailable: %v\n", err)
		history = nil
	}
	defer func() {
		if history == nil {
			return
		}
		if cerr := history.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	m := tui.NewModel(opts, loader, log, history)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func resolveOptions(cmd *cobra.Command) (model.Options, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Options{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "words", &playWords, fileCfg.Test.Words)
	applyStringConfig(cmd, "results-file", &playResults, fileCfg.Test.ResultsFile)
	applyStringConfig(cmd, "api-url", &playAPIURL, fileCfg.Test.APIBaseURL)
	applyStringConfig(cmd, "api-timeout", &playAPITimeout, fileCfg.Test.APITimeout)
	applyBoolConfig(cmd, "offline", &playOffline, fileCfg.Test.Offline)
	applyStringConfig(cmd, "words-dir", &playWordsDir, fileCfg.Test.WordsDir)

	timeout, err := time.ParseDuration(playAPITimeout)
	if err != nil || timeout <= 0 {
		return model.Options{}, fmt.Errorf("invalid --api-timeout value %q", playAPITimeout)
	}
	resultsPath := playResults
	if resultsPath == "" {
		resultsPath = config.DefaultResultsPath()
	}
	return model.Options{
		Words:       playWords,
		ResultsPath: resultsPath,
		APIBaseURL:  playAPIURL,
		APITimeout:  timeout,
		Offline:     playOffline,
		WordsDir:    playWordsDir,
	}, nil
}

// buildLoader assembles the word source chain: the embedded lists anchor it,
// a local folder overrides them when configured, and the API sits on top
// unless offline.
func buildLoader(opts model.Options) words.Loader {
	var loader words.Loader = words.NewBuiltinLoader()
	if opts.WordsDir != "" {
		loader = words.WithFallback(words.NewFolderLoader(opts.WordsDir), loader)
	}
	if !opts.Offline {
		loader = words.WithFallback(words.NewAPILoader(opts.APIBaseURL, opts.APITimeout), loader)
	}
	return loader
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show past results",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsDifficulty, "difficulty", "", "difficulty filter (easy, medium, hard, random)")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N tests")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	filter := model.HistoryFilter{Last: statsLast}
	if statsDifficulty != "" {
		difficulty, err := model.ParseDifficulty(statsDifficulty)
		if err != nil {
			return fmt.Errorf("invalid --difficulty value: %w", err)
		}
		filter.Difficulty = difficulty
	}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}

	history, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := history.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	records, err := history.ListResults(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list results: %w", err)
	}

	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, records); err != nil {
		return err
	}
	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	return stats.RenderHistory(out, records, width)
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Print a sample text without running the test",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().StringVar(&sampleDifficulty, "difficulty", string(model.DifficultyMedium), "difficulty (easy, medium, hard, random)")
	cmd.Flags().IntVar(&sampleCount, "count", defaultWords, "number of words")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	difficulty, err := model.ParseDifficulty(sampleDifficulty)
	if err != nil {
		return fmt.Errorf("invalid --difficulty value: %w", err)
	}
	if sampleCount <= 0 {
		return fmt.Errorf("--count must be greater than 0")
	}
	text, err := buildLoader(opts).Load(cmd.Context(), difficulty, sampleCount)
	if err != nil {
		return fmt.Errorf("failed to load words: %w", err)
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typespeed configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# words = %d            # Prefill for the word count prompt
# results-file = ""     # Flat results file (default %q)
# api-url = %q
# api-timeout = %q      # Word API request timeout
# offline = false       # Skip the word API and use local lists
# words-dir = ""        # Folder with easy.txt, medium.txt, hard.txt
`,
		defaultWords,
		config.DefaultResultsPath(),
		words.DefaultAPIBaseURL,
		defaultAPITimeout,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
