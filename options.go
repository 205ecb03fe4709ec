package audiochunks

import "log/slog"

// Option configures behavior when opening audio files.
//
// Example:
//
//	file, err := audiochunks.Open("track.aiff",
//	    audiochunks.WithStrictParsing(),
//	)
type Option func(*openOptions)

// openOptions holds configuration for opening files.
type openOptions struct {
	logger         *slog.Logger
	progress       func()
	strictParsing  bool // Fail on any warning
	ignoreWarnings bool // Suppress all warnings
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		logger: slog.New(slog.DiscardHandler),
	}
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, parsing continues past issues such as a size mismatch in a
// DSF header or an unreadable ID3 tag, returning warnings alongside the
// parsed data. With strict parsing enabled, any warning becomes an error.
//
// Example:
//
//	file, err := audiochunks.Open("track.dsf", audiochunks.WithStrictParsing())
//	// err != nil if ANY issue is encountered
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Warnings are still logged, but File.Warnings is always empty.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithLogger sets the logger that receives parse warnings (Warn) and a
// per-file summary (Debug). The default discards everything.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	file, err := audiochunks.Open("track.aiff", audiochunks.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithProgress registers a callback that OpenMany calls after each file
// it opens. The callback may run on several goroutines at once.
func WithProgress(fn func()) Option {
	return func(o *openOptions) {
		o.progress = fn
	}
}
