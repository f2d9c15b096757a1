package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/docsquad/internal/watcher"
)

var watchContext string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process media files dropped into the input folder",
	Long: `Watch paths.input and run the pipeline on every new media file, one at a
time. Documents are written to paths.output as <name>.md and processed
files are moved to paths.archived.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchContext, "context", "", "extra context passed to every run")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	if err := ensureDirectories(cfg.Paths.Input, cfg.Paths.Output, cfg.Paths.Archived, cfg.Paths.Temp); err != nil {
		return err
	}

	sh, err := buildShell(ctx, cfg, log)
	if err != nil {
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, watcher.NewDocHandler(sh, cfg.Paths, watchContext, log), log, watcher.Options{MaxConcurrent: 1})
	if err != nil {
		return err
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "docsquad is watching %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info(context.Background(), "docsquad stopped")
	return nil
}
