package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SummaryRow struct {
	Label string
	Value string
	Style *lipgloss.Style
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		style := valueStyle
		if row.Style != nil {
			style = *row.Style
		}
		label := padRight(row.Label+":", labelWidth+1)
		line := fmt.Sprintf("  %s %s", InkStyle.Render(label), style.Render(row.Value))
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
)
