package executor

import "context"

// Executor runs external tools such as ffmpeg.
type Executor interface {
	// Execute runs name with args and returns its stdout. A non-zero exit is
	// an error carrying the trimmed stderr.
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// Available reports whether name resolves on PATH.
	Available(name string) bool
}
