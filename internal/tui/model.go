package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"batchpix/internal/batch"
)

// Model is the live view of one batch run. It quits once the update channel
// is closed.
type Model struct {
	updates <-chan batch.ProgressUpdate
	title   string
	started time.Time
	width   int

	current   string
	total     int
	processed int
	errors    int
	bytesIn   int64
	bytesOut  int64
	done      bool
}

type runFinishedMsg struct{}

type progressMsg batch.ProgressUpdate

func NewModel(title string, updates <-chan batch.ProgressUpdate) Model {
	return Model{updates: updates, title: title, started: time.Now()}
}

func (m Model) Init() tea.Cmd {
	return waitForProgress(m.updates)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.apply(batch.ProgressUpdate(msg))
		return m, waitForProgress(m.updates)
	case runFinishedMsg:
		m.done = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m *Model) apply(u batch.ProgressUpdate) {
	if u.Current != "" {
		m.current = u.Current
	}
	m.total += u.TotalDelta
	m.processed += u.ProcessedDelta
	m.errors += u.ErrorDelta
	m.bytesIn += u.BytesInDelta
	m.bytesOut += u.BytesOutDelta
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	counts := fmt.Sprintf("%d of %d done", m.finished(), m.total)
	if m.errors > 0 {
		counts += warnStyle.Render(fmt.Sprintf("  %d skipped", m.errors))
	}

	rows := []string{
		titleStyle.Render(m.title) + dimStyle.Render("  "+time.Since(m.started).Round(100*time.Millisecond).String()),
		progressBar(m.barWidth(), m.ratio()),
		labelStyle.Render(counts),
	}
	if m.current != "" {
		rows = append(rows, dimStyle.Render("now: ")+labelStyle.Render(m.current))
	}
	if m.bytesIn > 0 {
		rows = append(rows, dimStyle.Render("size: ")+labelStyle.Render(m.savings()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) finished() int {
	return m.processed + m.errors
}

func (m Model) ratio() float64 {
	if m.total <= 0 {
		return 0
	}
	return math.Min(1, float64(m.finished())/float64(m.total))
}

func (m Model) barWidth() int {
	if m.width <= 0 {
		return 40
	}
	return min(max(m.width-8, 20), 60)
}

// savings describes the byte change of the files finished so far.
func (m Model) savings() string {
	in, out := humanize.IBytes(uint64(m.bytesIn)), humanize.IBytes(uint64(m.bytesOut))
	delta := m.bytesIn - m.bytesOut
	switch {
	case delta > 0:
		pct := float64(delta) / float64(m.bytesIn) * 100
		return fmt.Sprintf("%s → %s (saved %.0f%%)", in, out, pct)
	case delta < 0:
		return fmt.Sprintf("%s → %s (grew %s)", in, out, humanize.IBytes(uint64(-delta)))
	default:
		return fmt.Sprintf("%s → %s", in, out)
	}
}

func waitForProgress(updates <-chan batch.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		if u, ok := <-updates; ok {
			return progressMsg(u)
		}
		return runFinishedMsg{}
	}
}

// progressBar draws a bar of width cells followed by the percentage.
func progressBar(width int, ratio float64) string {
	filled := min(max(int(math.Round(ratio*float64(width))), 0), width)
	return barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", width-filled)) +
		labelStyle.Render(fmt.Sprintf(" %3.0f%%", ratio*100))
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	labelStyle = lipgloss.NewStyle().Foreground(ColorInk)
	barStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	warnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
	dimStyle   = lipgloss.NewStyle().Foreground(ColorDim)
)
