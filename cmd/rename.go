package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"batchpix/internal/batch"
	"batchpix/internal/media"
	"batchpix/internal/picker"
	"batchpix/internal/transform"
)

var renameDryRun bool

var renameCmd = &cobra.Command{
	Use:   "rename [flags] <path>...",
	Short: "Give images a common base name and a counter",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl := cfg.Rename.Template()
		if renameDryRun {
			return renamePlan(cmd, args, tmpl)
		}
		header := fmt.Sprintf("Pattern %s", tmpl.Name(0, "x."+extensionHint(tmpl)))
		return runPage(cmd, args, renameOperation(tmpl), header)
	},
}

func renameOperation(tmpl transform.Template) batch.Operation {
	return batch.Operation{
		Name: "rename",
		Transform: func(_ context.Context, index int, src media.SourceFile) (media.SourceFile, error) {
			return tmpl.Apply(index, src), nil
		},
		Label: func(src, _ media.SourceFile) string {
			return "from " + src.Name
		},
	}
}

// renamePlan prints the old and new names without running a batch.
func renamePlan(cmd *cobra.Command, args []string, tmpl transform.Template) error {
	files, err := picker.Select(cmd.Context(), args, picker.Options{
		Accept:   cfg.Picker.Accept,
		Multiple: cfg.Picker.Multiple,
		Exclude:  cfg.Output,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range transform.RenameBatch(files, tmpl) {
		fmt.Fprintf(out, "%s %s %s\n", r.OriginalName, pageDimStyle.Render("->"), pageHeaderStyle.Render(r.File.Name))
	}
	return nil
}

func extensionHint(tmpl transform.Template) string {
	if tmpl.Extension == transform.ExtKeep {
		return "ext"
	}
	return string(tmpl.Extension)
}

func init() {
	exts := make([]string, 0, len(transform.Extensions))
	for _, ext := range transform.Extensions {
		exts = append(exts, string(ext))
	}

	flags := renameCmd.Flags()
	flags.String("base", "image", "base name of every output file")
	flags.Bool("counter", true, "append a zero padded counter to the base name")
	flags.String("counter-start", "1", "first counter value")
	flags.String("counter-padding", "2", "minimum counter width in digits (1-10)")
	flags.String("ext", "keep", "output extension: "+strings.Join(exts, ", "))
	flags.BoolVar(&renameDryRun, "dry-run", false, "list the new names without saving anything")
	bindFlags(flags, map[string]string{
		"rename.base_name":       "base",
		"rename.add_counter":     "counter",
		"rename.counter_start":   "counter-start",
		"rename.counter_padding": "counter-padding",
		"rename.extension":       "ext",
	})

	rootCmd.AddCommand(renameCmd)
}
