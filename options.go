package seam

import (
	"io"

	"github.com/seamlang/seam/render"
)

// Options configures render execution.
type Options struct {
	// Logging configuration
	LogLevel  string        // "error", "warn", "info", "debug"; empty disables logging
	LogWriter io.Writer     // destination for the default logger (default: os.Stderr)
	Logger    render.Logger // overrides LogLevel and LogWriter when set

	// Safeguards against malformed programs. The compiler is trusted,
	// but a bad jump must not spin a render forever.
	MaxSteps      int // total step budget across blocks (default: 1 << 24)
	MaxBlockDepth int // nested block and capture depth (default: 100)
}

// DefaultOptions returns the default configuration for render
// execution.
func DefaultOptions() Options {
	return Options{
		MaxSteps:      1 << 24,
		MaxBlockDepth: 100,
	}
}

// withDefaults fills zero safeguard fields so Options{} behaves like
// DefaultOptions().
func (o Options) withDefaults() Options {
	if o.MaxSteps == 0 {
		o.MaxSteps = 1 << 24
	}
	if o.MaxBlockDepth == 0 {
		o.MaxBlockDepth = 100
	}
	return o
}

func (o Options) logger() render.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.LogLevel != "" {
		return render.NewLogger(render.ParseLogLevel(o.LogLevel), o.LogWriter)
	}
	return render.NewNoopLogger()
}
