package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/docsquad/internal/config"
	"github.com/nguyentantai21042004/docsquad/internal/export"
)

var (
	runContext string
	runOut     string
	runDocx    bool
	runPrint   bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Generate documentation for one media file",
	Long: `Run the Ingest -> Analyze -> Write pipeline on one local video, audio or
image file and save the resulting Markdown document.

Examples:
  docsquad run session.mp4 --context "installing apache on ubuntu"
  docsquad run screenshot.png -o docs/error.md --docx`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runContext, "context", "", "extra context for the analyst")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "output Markdown path (default: <paths.output>/<name>.md)")
	runCmd.Flags().BoolVar(&runDocx, "docx", false, "also write a .docx next to the Markdown file")
	runCmd.Flags().BoolVar(&runPrint, "print", false, "print the document to stdout")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]
	sink := newTerminalSink(cmd.ErrOrStderr())

	sh, err := buildShell(ctx, cfg, log)
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			sink.failed(err)
		}
		return err
	}

	run, err := sh.ProcessPath(ctx, path, runContext, sink)
	if err != nil {
		sink.failed(err)
		return err
	}

	out := runOut
	if out == "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		out = filepath.Join(cfg.Paths.Output, base+".md")
	}
	if err := ensureDirectories(filepath.Dir(out)); err != nil {
		return err
	}
	if err := os.WriteFile(out, []byte(run.Document), 0644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	sink.hint("Document saved: %s", out)

	if runDocx {
		docxPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".docx"
		if err := export.Docx(export.Title(run.Document, filepath.Base(path)), run.Document, docxPath); err != nil {
			return err
		}
		sink.hint("DOCX saved: %s", docxPath)
	}

	if runPrint {
		fmt.Fprintln(cmd.OutOrStdout(), run.Document)
	}
	return nil
}
