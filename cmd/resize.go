package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"batchpix/internal/batch"
	"batchpix/internal/media"
	"batchpix/internal/preview"
	"batchpix/internal/transform"
)

var resizeCmd = &cobra.Command{
	Use:   "resize [flags] <path>...",
	Short: "Scale images to a target size in their original format",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := cfg.Resize.ResizeParams()
		header := fmt.Sprintf("Target %d × %d px", params.Width, params.Height)
		if params.MaintainAspectRatio {
			header += " (aspect ratio kept)"
		}
		return runPage(cmd, args, resizeOperation(params), header)
	},
}

func resizeOperation(params transform.ResizeParams) batch.Operation {
	return batch.Operation{
		Name: "resize",
		Transform: batch.PerFile(func(ctx context.Context, src media.SourceFile) (media.SourceFile, error) {
			return transform.Resize(ctx, src, params)
		}),
		Label: resizeLabel,
	}
}

func resizeLabel(_, out media.SourceFile) string {
	w, h, err := transform.Dimensions(out)
	if err != nil {
		return preview.SizeLabel(out.Size())
	}
	return fmt.Sprintf("%d × %d px", w, h)
}

func init() {
	flags := resizeCmd.Flags()
	flags.IntP("width", "W", 800, "target width in pixels")
	flags.IntP("height", "H", 600, "target height in pixels")
	flags.Bool("keep-aspect", true, "adjust one dimension to keep the source aspect ratio")
	bindFlags(flags, map[string]string{
		"resize.width":       "width",
		"resize.height":      "height",
		"resize.keep_aspect": "keep-aspect",
	})

	rootCmd.AddCommand(resizeCmd)
}
