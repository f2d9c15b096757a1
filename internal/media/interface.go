package media

import "context"

// Service is the remote multimedia-processing service that accepts uploads
// and processes them asynchronously.
type Service interface {
	Upload(ctx context.Context, path, mimeType string) (*RemoteFile, error)
	Get(ctx context.Context, name string) (*RemoteFile, error)
}

// Ingester uploads a local file and waits until it is ready for analysis.
type Ingester interface {
	Ingest(ctx context.Context, path string) (*Asset, error)
}

// Prober reads container metadata from a local media file.
type Prober interface {
	Probe(ctx context.Context, path string) (*Probe, error)
}
