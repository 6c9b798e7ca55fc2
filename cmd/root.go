package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"batchpix/internal/config"
)

var (
	v       = viper.New()
	cfgFile string
	noSave  bool

	cfg    *config.Config
	logger = slog.Default()
	logOut *os.File
)

var rootCmd = &cobra.Command{
	Use:   "batchpix",
	Short: "batchpix - compress, resize and rename images in batches",
	Long:  "batchpix runs one image operation over a selection of files, previews the results and saves them to an output folder.",

	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		if noSave {
			loaded.Save = false
		}
		cfg = loaded

		l, out, err := newLogger(cfg.Logging)
		if err != nil {
			return err
		}
		logger, logOut = l, out
		slog.SetDefault(logger)
		logger.Debug("config loaded", "file", cfgFile, "output", cfg.Output, "save", cfg.Save)
		return nil
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if logOut != nil {
		_ = logOut.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	config.SetDefaults(v)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "read settings from this YAML file")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Bool("log-json", false, "write logs as JSON")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.StringP("output", "o", "processed", "destination folder for saved results")
	flags.BoolVar(&noSave, "no-save", false, "preview results without saving them")
	flags.Bool("progress", true, "show live progress while a batch runs")
	flags.String("accept", "image/*", "accept filter: media types, wildcards or extensions")
	flags.Bool("multiple", true, "select every matching file instead of only the first")

	bindFlags(flags, map[string]string{
		"log.level":       "log-level",
		"log.json":        "log-json",
		"log.file":        "log-file",
		"output":          "output",
		"progress":        "progress",
		"picker.accept":   "accept",
		"picker.multiple": "multiple",
	})
}

func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind %s: %v", name, err))
		}
	}
}
