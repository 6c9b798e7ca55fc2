package tui

import (
	"strings"
	"testing"

	"batchpix/internal/batch"
)

func TestModelAccumulatesUpdates(t *testing.T) {
	updates := make(chan batch.ProgressUpdate)
	m := NewModel("compress", updates)

	steps := []batch.ProgressUpdate{
		{TotalDelta: 2},
		{Current: "a.png"},
		{ProcessedDelta: 1, BytesInDelta: 2048, BytesOutDelta: 512},
		{Current: "b.png"},
		{ErrorDelta: 1},
	}
	for _, u := range steps {
		next, _ := m.Update(progressMsg(u))
		m = next.(Model)
	}

	if m.total != 2 || m.processed != 1 || m.errors != 1 || m.current != "b.png" {
		t.Fatalf("unexpected model %+v", m)
	}
	if m.ratio() != 1 {
		t.Fatalf("ratio = %v", m.ratio())
	}

	view := m.View()
	for _, want := range []string{"2 of 2 done", "1 skipped", "now: b.png", "saved 75%", "100%"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	next, _ := m.Update(runFinishedMsg{})
	if next.(Model).View() != "" {
		t.Fatal("expected empty view after the run finished")
	}
}

func TestSavingsReportsGrowth(t *testing.T) {
	m := Model{bytesIn: 1024, bytesOut: 3072}
	if got := m.savings(); !strings.Contains(got, "grew 2.0 KiB") {
		t.Fatalf("savings = %q", got)
	}
}

func TestProgressBarBounds(t *testing.T) {
	full := progressBar(4, 1)
	if strings.Count(full, "█") != 4 || strings.Contains(full, "░") {
		t.Fatalf("full bar = %q", full)
	}
	empty := progressBar(4, -1)
	if strings.Count(empty, "░") != 4 || strings.Contains(empty, "█") {
		t.Fatalf("empty bar = %q", empty)
	}
}

func TestRenderPreviews(t *testing.T) {
	out := RenderPreviews([]PreviewRow{
		{Name: "a_compressed.jpg", Label: "Compressed (1.0 KiB)", Source: "a.png"},
		{Name: "b.png", Label: "decode b.png: bad data", Source: "b.png", Failed: true},
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "a_compressed.jpg") || !strings.Contains(lines[2], "bad data") {
		t.Fatalf("unexpected grid:\n%s", out)
	}
	if RenderPreviews(nil) == "" {
		t.Fatal("expected placeholder for empty grid")
	}
}

func TestRenderSummaryAligns(t *testing.T) {
	out := RenderSummary([]SummaryRow{{Label: "a", Value: "1"}, {Label: "longer", Value: "22"}})
	lines := strings.Split(out, "\n")
	if len(lines) != 4 || lines[0] != lines[3] {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}
