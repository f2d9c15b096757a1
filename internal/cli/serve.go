package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/docsquad/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Long: `Serve an upload form with live agent status, a document preview and
.md/.docx downloads. Uploads are processed one at a time.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if err := ensureDirectories(cfg.Paths.Temp); err != nil {
		return err
	}

	sh, err := buildShell(ctx, cfg, log)
	if err != nil {
		return err
	}

	srv := server.New(sh, server.Options{
		Addr:             cfg.Server.Addr,
		MaxUploadMB:      cfg.Server.MaxUploadMB,
		MaxQueued:        cfg.Server.MaxQueued,
		TempDir:          cfg.Paths.Temp,
		CheckCredentials: cfg.CheckCredentials,
	}, log)

	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
