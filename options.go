package composite

import "log/slog"

// Option configures a renderer during creation.
//
// Example:
//
//	r, err := gpu.NewRenderer(device, queue, scene,
//	    composite.WithClearColor(composite.RGBA(0, 0, 0, 1)))
type Option func(*Options)

// Options holds the resolved configuration of a GPU renderer.
type Options struct {
	// ClearColor is the color the target is cleared to before the scene
	// is drawn. Default is transparent black.
	ClearColor Color

	// Logger overrides the package logger for one renderer. Nil means
	// use Logger().
	Logger *slog.Logger
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		ClearColor: Transparent,
	}
}

// NewOptions applies opts over the defaults.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Log returns the configured logger, falling back to the package logger.
func (o *Options) Log() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return Logger()
}

// WithClearColor sets the color the target is cleared to each frame.
func WithClearColor(c Color) Option {
	return func(o *Options) {
		o.ClearColor = c
	}
}

// WithLogger sets a logger for a single renderer.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}
