package executor

import "context"

// Executor runs external helper binaries such as ffprobe.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	Available(name string) bool
}
