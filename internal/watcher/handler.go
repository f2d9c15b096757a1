package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/docsquad/internal/config"
	"github.com/nguyentantai21042004/docsquad/internal/logger"
	"github.com/nguyentantai21042004/docsquad/internal/shell"
)

// NewDocHandler returns an EventHandler that runs the pipeline on a dropped
// file, writes <name>.md to the output folder and moves the source file to
// the archive folder. Failed files stay in the input folder.
func NewDocHandler(sh shell.Shell, paths config.PathsConfig, userContext string, log logger.Logger) EventHandler {
	return func(ctx context.Context, filePath string) error {
		run, err := sh.ProcessPath(ctx, filePath, userContext, nil)
		if err != nil {
			return fmt.Errorf("process: %w", err)
		}

		outPath, err := writeOutput(paths.Output, filePath, run.Document)
		if err != nil {
			return err
		}
		log.Info(ctx, "Document saved: %s", outPath)

		if err := moveToArchive(paths.Archived, filePath); err != nil {
			return err
		}
		log.Info(ctx, "Archived source: %s", filePath)
		return nil
	}
}

func writeOutput(dir, sourcePath, document string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	outPath := filepath.Join(dir, base+".md")

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(document), 0644); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return outPath, nil
}

func moveToArchive(dir, sourcePath string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	dest := filepath.Join(dir, filepath.Base(sourcePath))
	if err := os.Rename(sourcePath, dest); err != nil {
		return fmt.Errorf("move to archive: %w", err)
	}
	return nil
}
