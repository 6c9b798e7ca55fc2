package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SummaryRow struct {
	Label string
	Value string
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
		valueWidth = max(valueWidth, lipgloss.Width(row.Value))
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// PreviewRow is one line of the results grid: the output name, its caption
// and the file it was derived from.
type PreviewRow struct {
	Name   string
	Label  string
	Source string
	Failed bool
}

// RenderPreviews lays results out as a three column grid. Failed rows are
// drawn in the warning colour with the error in the caption column.
func RenderPreviews(rows []PreviewRow) string {
	if len(rows) == 0 {
		return dimStyle.Render("no results")
	}

	nameWidth := lipgloss.Width("Name")
	labelWidth := lipgloss.Width("Preview")
	for _, row := range rows {
		nameWidth = max(nameWidth, lipgloss.Width(row.Name))
		labelWidth = max(labelWidth, lipgloss.Width(row.Label))
	}

	header := fmt.Sprintf("%s  %s  %s",
		headerStyle.Render(padRight("Name", nameWidth)),
		headerStyle.Render(padRight("Preview", labelWidth)),
		headerStyle.Render("Source"),
	)
	lines := []string{header}
	for _, row := range rows {
		style := valueStyle
		if row.Failed {
			style = failedStyle
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			style.Render(padRight(row.Name, nameWidth)),
			labelStyle.Render(padRight(row.Label, labelWidth)),
			dimStyle.Render(row.Source),
		))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

var (
	valueStyle  = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(ColorAccentAlt).Bold(true)
	failedStyle = lipgloss.NewStyle().Foreground(ColorWarn)
)
