package tagframe

import (
	"io"
	"log/slog"

	"github.com/simonhull/tagframe/internal/id3v2"
)

// Option configures LoadTag, UpdateTag and LoadMany.
//
// Options use the functional options pattern for clean, extensible APIs.
// Write options are ignored by LoadTag and LoadMany.
//
// Example:
//
//	records, err := tagframe.UpdateTag("song.mp3", edits,
//	    tagframe.WithBackup(".bak"),
//	    tagframe.WithValidation(),
//	)
type Option func(*options)

// options holds the configuration of one call.
type options struct {
	logger          *slog.Logger
	backupSuffix    string // Suffix for backup file (e.g., ".bak")
	validate        bool   // Re-read after write to verify
	preserveModTime bool   // Keep original modification time
	padding         int    // Padding bytes after the last frame
}

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		padding: id3v2.DefaultPadding,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used for debug and info events.
//
// By default nothing is logged. A nil logger keeps the default.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
//	records, err := tagframe.LoadTag("song.mp3", tagframe.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
