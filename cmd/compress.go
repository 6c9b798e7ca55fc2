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

var compressCmd = &cobra.Command{
	Use:   "compress [flags] <path>...",
	Short: "Re-encode images as smaller JPEGs",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quality := cfg.Compress.Quality
		header := fmt.Sprintf("Quality %d%% (%s)", quality, transform.QualityHint(quality))
		return runPage(cmd, args, compressOperation(quality), header)
	},
}

func compressOperation(quality int) batch.Operation {
	compressor := transform.NewCompressor(logger)
	return batch.Operation{
		Name: "compress",
		Transform: batch.PerFile(func(ctx context.Context, src media.SourceFile) (media.SourceFile, error) {
			return compressor.Compress(ctx, src, quality)
		}),
		Label: func(_, out media.SourceFile) string {
			return fmt.Sprintf("Compressed (%s)", preview.SizeLabel(out.Size()))
		},
	}
}

func init() {
	compressCmd.Flags().IntP("quality", "q", 32, "JPEG quality from 1 (smallest) to 100 (best)")
	bindFlags(compressCmd.Flags(), map[string]string{"compress.quality": "quality"})

	rootCmd.AddCommand(compressCmd)
}
