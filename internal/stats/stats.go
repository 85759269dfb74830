// Package stats contains metric calculations and history reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/MysticalShroom/typespeed/internal/model"
)

const sparkChars = " .:-=+*#%@"

// WPM computes words per minute as (characters / 5) per elapsed minute.
// Returns 0 for non-positive elapsed time.
func WPM(charsTyped int, elapsed time.Duration) float64 {
	if elapsed <= 0 || charsTyped <= 0 {
		return 0
	}
	minutes := elapsed.Minutes()
	return (float64(charsTyped) / 5.0) / minutes
}

// Accuracy returns the percentage of target characters typed without
// uncorrected error, rounded to one decimal and clamped to [0,100].
func Accuracy(targetLen, errors int) float64 {
	if targetLen <= 0 {
		return 0
	}
	if errors > targetLen {
		errors = targetLen
	}
	if errors < 0 {
		errors = 0
	}
	pct := float64(targetLen-errors) / float64(targetLen) * 100
	return math.Round(pct*10) / 10
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints aggregate figures for the given results.
func RenderSummary(w io.Writer, records []model.ResultRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	var totalWPM, totalAcc float64
	bestWPM := 0.0
	for _, rec := range records {
		totalWPM += rec.WPM
		totalAcc += rec.Accuracy
		if rec.WPM > bestWPM {
			bestWPM = rec.WPM
		}
	}
	count := float64(len(records))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Tests: %d\n", len(records)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.1f\n", totalWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.1f\n", bestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.1f%%\n", totalAcc/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderHistory prints a table of recent results, newest last, followed by a
// WPM sparkline. Width trims the sparkline to the terminal when positive.
func RenderHistory(w io.Writer, records []model.ResultRecord, width int) error {
	if len(records) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "Recent Tests"); err != nil {
		return err
	}
	headers := []string{"Finished", "Difficulty", "Words", "WPM", "Accuracy", "Errors", "Time"}
	rows := make([][]string, 0, len(records))
	wpms := make([]float64, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.FinishedAt.Format("2006-01-02 15:04"),
			rec.Difficulty.Title(),
			fmt.Sprintf("%d", rec.Words),
			fmt.Sprintf("%.1f", rec.WPM),
			fmt.Sprintf("%.1f%%", rec.Accuracy),
			fmt.Sprintf("%d", rec.Errors),
			fmt.Sprintf("%.1fs", rec.Duration.Seconds()),
		})
		wpms = append(wpms, rec.WPM)
	}
	rightAlign := map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	spark := Sparkline(wpms)
	if width > 0 && len(spark) > width {
		spark = spark[len(spark)-width:]
	}
	if _, err := fmt.Fprintf(w, "\nWPM trend: %s\n", spark); err != nil {
		return err
	}
	return nil
}
