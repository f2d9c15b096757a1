package pipeline

import "context"

// Pipeline runs Ingest → Analyze → Write for one media file.
type Pipeline interface {
	Run(ctx context.Context, req Request) (*Run, error)
}

// Sink receives status events synchronously, in emission order.
type Sink interface {
	Report(ctx context.Context, ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, ev Event)

func (f SinkFunc) Report(ctx context.Context, ev Event) {
	f(ctx, ev)
}
