package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"batchpix/internal/batch"
	"batchpix/internal/download"
	"batchpix/internal/picker"
	"batchpix/internal/preview"
	"batchpix/internal/tui"
)

// runPage drives one page: pick files, run the operation once, show the
// results and save them.
func runPage(cmd *cobra.Command, args []string, op batch.Operation, header string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	files, err := picker.Select(ctx, args, picker.Options{
		Accept:   cfg.Picker.Accept,
		Multiple: cfg.Picker.Multiple,
		Exclude:  cfg.Output,
	})
	if err != nil {
		return err
	}

	registry := preview.NewRegistry()
	session := batch.NewSession(op, registry, logger)
	defer func() {
		session.Clear()
		logger.Debug("preview handles released", "issued", registry.Issued(), "live", registry.Live())
	}()
	session.Select(files)

	if header != "" {
		fmt.Fprintln(out, pageHeaderStyle.Render(header))
	}

	report, err := runWithProgress(ctx, session, op.Name)
	if err != nil {
		return err
	}

	rows, err := previewRows(session)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, tui.RenderPreviews(rows))
	fmt.Fprintln(out, tui.RenderSummary(summaryRows(report)))

	if !cfg.Save {
		fmt.Fprintln(out, pageDimStyle.Render("Results were not saved (--no-save)."))
		return nil
	}
	if report.Succeeded == 0 {
		return nil
	}

	paths, saveErr := session.DownloadAll(ctx, download.NewDirSaver(cfg.Output))
	outPath := cfg.Output
	if abs, absErr := filepath.Abs(cfg.Output); absErr == nil {
		outPath = abs
	}
	fmt.Fprintf(out, "Saved %d file(s) to: %s\n", len(paths), outPath)
	return saveErr
}

// runWithProgress runs the session with the progress view attached unless
// progress is turned off.
func runWithProgress(ctx context.Context, session *batch.Session, title string) (batch.Report, error) {
	if !cfg.Progress {
		return session.Run(ctx, nil)
	}

	updates := make(chan batch.ProgressUpdate, 64)
	model := tui.NewModel(title, updates)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	uiDone := make(chan struct{})
	go func() {
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			logger.Debug("progress view stopped", "error", err)
		}
		// keep the batch from blocking on a view that exited early
		for range updates {
		}
		close(uiDone)
	}()

	report, err := session.Run(ctx, updates)
	close(updates)
	<-uiDone
	return report, err
}

// previewRows lists results and failures in input order.
func previewRows(session *batch.Session) ([]tui.PreviewRow, error) {
	results := session.Results()
	failures := session.Failures()

	byIndex := make(map[int]tui.PreviewRow, len(results)+len(failures))
	for i, r := range results {
		h, err := session.Preview(i)
		if err != nil {
			return nil, err
		}
		byIndex[r.Source] = tui.PreviewRow{Name: h.Name, Label: h.Label}
	}
	for _, f := range failures {
		byIndex[f.Source] = tui.PreviewRow{Name: f.Name, Label: f.Err.Error(), Failed: true}
	}

	rows := make([]tui.PreviewRow, 0, len(byIndex))
	for i := range session.Sources() {
		row, ok := byIndex[i]
		if !ok {
			continue
		}
		src, err := session.PreviewSource(i)
		if err != nil {
			return nil, err
		}
		row.Source = fmt.Sprintf("%s (%s, %s)", src.Name, src.Label, preview.SizeLabel(src.Size))
		rows = append(rows, row)
	}
	return rows, nil
}

func summaryRows(r batch.Report) []tui.SummaryRow {
	rows := []tui.SummaryRow{
		{Label: "Operation", Value: r.Operation},
		{Label: "Files selected", Value: fmt.Sprintf("%d", r.Total)},
		{Label: "Succeeded", Value: fmt.Sprintf("%d", r.Succeeded)},
		{Label: "Failed", Value: fmt.Sprintf("%d", r.Failed)},
		{Label: "Bytes in", Value: humanize.IBytes(uint64(r.BytesIn))},
		{Label: "Bytes out", Value: humanize.IBytes(uint64(r.BytesOut))},
	}
	if r.Failed > 0 {
		names := make([]string, 0, len(r.Failures))
		for _, f := range r.Failures {
			names = append(names, f.Name)
		}
		rows = append(rows, tui.SummaryRow{Label: "Skipped", Value: strings.Join(names, ", ")})
	}
	return rows
}

var (
	pageHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	pageDimStyle    = lipgloss.NewStyle().Foreground(tui.ColorDim)
)
