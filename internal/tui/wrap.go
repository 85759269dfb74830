// Package tui provides the Bubble Tea typing interface.
package tui

import "strings"

func renderCells(cells []styledCell) string {
	var b strings.Builder
	for _, cell := range cells {
		b.WriteString(cell.s)
	}
	return b.String()
}

// wrapCells breaks styled cells into lines no wider than width, preferring
// to break at spaces. Cells carry already-rendered ANSI, so widths come from
// the stored rune widths rather than the strings.
func wrapCells(cells []styledCell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	var out strings.Builder
	line := make([]styledCell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		cell := cells[i]
		if lineWidth+cell.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderCells(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledCell{}, line[lastSpaceIdx+1:]...)
				lineWidth = cellsWidth(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, cell)
		lineWidth += cell.width
		if cell.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

func cellsWidth(line []styledCell) int {
	total := 0
	for _, cell := range line {
		total += cell.width
	}
	return total
}

func lastSpaceIndex(line []styledCell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
