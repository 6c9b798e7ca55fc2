package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"batchpix/internal/picker"
	"batchpix/internal/preview"
	"batchpix/internal/transform"
	"batchpix/internal/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>...",
	Short: "Report type, size and orientation without modifying files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := picker.Select(cmd.Context(), args, picker.Options{
			Accept:   cfg.Picker.Accept,
			Multiple: cfg.Picker.Multiple,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for i, f := range files {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s\n", inspectFileStyle.Render(f.Name))

			info, err := transform.Probe(f)
			printField(cmd, "type", fmt.Sprintf("%s (content: %s)", info.Declared, info.Sniffed))
			printField(cmd, "size", preview.SizeLabel(info.Size))
			if err != nil {
				logger.Warn("probe failed", "file", f.Name, "error", err)
				fmt.Fprintf(out, "  %s %s\n", inspectBulletStyle.Render("-"), inspectWarnStyle.Render(err.Error()))
				continue
			}
			printField(cmd, "dimensions", fmt.Sprintf("%d × %d px", info.Width, info.Height))
			printField(cmd, "orientation", fmt.Sprintf("%d", info.Orientation))
		}
		return nil
	},
}

func printField(cmd *cobra.Command, name, value string) {
	fmt.Fprintf(cmd.OutOrStdout(), "  %s %s %s\n",
		inspectBulletStyle.Render("-"),
		inspectCategoryStyle.Render(name+":"),
		inspectValueStyle.Render(value),
	)
}

var (
	inspectFileStyle     = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	inspectCategoryStyle = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	inspectValueStyle    = lipgloss.NewStyle().Foreground(tui.ColorInk)
	inspectWarnStyle     = lipgloss.NewStyle().Foreground(tui.ColorWarn)
	inspectBulletStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}
