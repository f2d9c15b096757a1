package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/docsquad/internal/media"
	"github.com/nguyentantai21042004/docsquad/internal/pipeline"
)

func (s *implShell) Process(ctx context.Context, up Upload) (*pipeline.Run, error) {
	ext := strings.ToLower(filepath.Ext(up.Name))
	if !media.IsSupported(up.Name) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}
	if err := s.checkCredentials(); err != nil {
		return nil, err
	}

	tmp, err := s.saveTemp(up.Body, ext)
	if err != nil {
		s.logger.Error(ctx, "Failed to store upload %s: %v", up.Name, err)
		return nil, &RunError{Err: err}
	}
	defer s.removeTemp(ctx, tmp)

	s.logger.Info(ctx, "Stored upload %s as %s", up.Name, tmp)
	return s.run(ctx, tmp, up.Context, up.Sink)
}

func (s *implShell) ProcessPath(ctx context.Context, path, userContext string, sink pipeline.Sink) (*pipeline.Run, error) {
	if !media.IsSupported(path) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, filepath.Ext(path))
	}
	if err := s.checkCredentials(); err != nil {
		return nil, err
	}
	return s.run(ctx, path, userContext, sink)
}

func (s *implShell) run(ctx context.Context, path, userContext string, sink pipeline.Sink) (*pipeline.Run, error) {
	run, err := s.pipe.Run(ctx, pipeline.Request{FilePath: path, Context: userContext, Sink: sink})
	if err != nil {
		s.logger.Error(ctx, "Pipeline failed for %s: %v", path, err)
		return nil, &RunError{Path: path, Err: err}
	}
	return run, nil
}

func (s *implShell) checkCredentials() error {
	if s.opts.CheckCredentials == nil {
		return nil
	}
	return s.opts.CheckCredentials()
}

// saveTemp copies body into a new file that keeps the upload's extension so
// the media type can still be derived from the name.
func (s *implShell) saveTemp(body io.Reader, ext string) (string, error) {
	dir := s.opts.TempDir
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create temp dir: %w", err)
		}
	}

	f, err := os.CreateTemp(dir, "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), nil
}

func (s *implShell) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
		return
	}
	s.logger.Debug(ctx, "Cleaned up temp file: %s", path)
}
