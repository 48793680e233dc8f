// Package trace builds the github.com/hashicorp/go-hclog loggers the
// engine accepts: New for Trace-level output to stderr, and Null for
// callers that don't care about tracing and pay nothing for it.
package trace

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// New returns a logger suitable for passing to engine.WithLogger. name
// becomes the logger's Name() field, so several engines sharing a process
// can be told apart in interleaved output.
func New(name string) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Level:  hclog.Trace,
		Output: os.Stderr,
	})
}

// Null returns a logger that discards everything, the default an Engine
// uses when no logger option is supplied.
func Null() hclog.Logger {
	return hclog.NewNullLogger()
}
