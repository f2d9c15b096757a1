package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// Ingest uploads path and blocks until the remote service reports it is no
// longer processing. Failures are returned as *IngestError.
func (i *implIngester) Ingest(ctx context.Context, path string) (*Asset, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &IngestError{Path: path, Kind: KindNotFound, Err: ErrFileNotFound}
		}
		return nil, &IngestError{Path: path, Kind: KindNotFound, Err: err}
	}

	mimeType := MIMEType(path)
	i.logger.Info(ctx, "Uploading %s (%s)", path, mimeType)

	file, err := i.service.Upload(ctx, path, mimeType)
	if err != nil {
		return nil, &IngestError{Path: path, Kind: KindTransport, Err: fmt.Errorf("upload: %w", err)}
	}

	file, err = i.waitReady(ctx, path, file)
	if err != nil {
		return nil, err
	}

	asset := &Asset{
		LocalPath:  path,
		RemoteName: file.Name,
		URI:        file.URI,
		MIMEType:   file.MIMEType,
	}
	if asset.MIMEType == "" {
		asset.MIMEType = mimeType
	}

	if i.opts.Prober != nil {
		probe, err := i.opts.Prober.Probe(ctx, path)
		if err != nil {
			i.logger.Warn(ctx, "Failed to probe %s: %v", path, err)
		} else {
			asset.Probe = probe
		}
	}

	i.logger.Info(ctx, "File ready for analysis: %s", asset.URI)
	return asset, nil
}

// waitReady polls the service at a fixed interval while the file is
// processing. The wait is bounded by opts.Timeout and ctx. Any state other
// than FAILED, including an unspecified one, counts as ready.
func (i *implIngester) waitReady(ctx context.Context, path string, file *RemoteFile) (*RemoteFile, error) {
	deadline := time.NewTimer(i.opts.Timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(i.opts.PollInterval)
	defer ticker.Stop()

	for file.State == StateProcessing {
		select {
		case <-ctx.Done():
			return nil, &IngestError{Path: path, Kind: KindTransport, Err: ctx.Err()}
		case <-deadline.C:
			return nil, &IngestError{Path: path, Kind: KindTimeout, Err: fmt.Errorf("%w after %s", ErrTimeout, i.opts.Timeout)}
		case <-ticker.C:
		}

		i.logger.Debug(ctx, "Polling %s", file.Name)
		next, err := i.service.Get(ctx, file.Name)
		if err != nil {
			return nil, &IngestError{Path: path, Kind: KindTransport, Err: fmt.Errorf("poll: %w", err)}
		}
		file = next
	}

	if file.State == StateFailed {
		err := ErrProcessingFailed
		if file.Error != "" {
			err = fmt.Errorf("%w: %s", ErrProcessingFailed, file.Error)
		}
		return nil, &IngestError{Path: path, Kind: KindProcessingFailed, Err: err}
	}

	return file, nil
}
