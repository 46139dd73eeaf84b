package tagframe

import (
	"io"
	"log/slog"
	"testing"

	"github.com/simonhull/tagframe/internal/id3v2"
)

func TestOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := defaultOptions()

		if opts.backupSuffix != "" {
			t.Errorf("expected empty backupSuffix, got %q", opts.backupSuffix)
		}
		if opts.validate {
			t.Error("expected validate to be false")
		}
		if opts.preserveModTime {
			t.Error("expected preserveModTime to be false")
		}
		if opts.padding != id3v2.DefaultPadding {
			t.Errorf("expected padding %d, got %d", id3v2.DefaultPadding, opts.padding)
		}
		if opts.logger == nil {
			t.Error("expected a non-nil default logger")
		}
	})

	t.Run("WithBackup", func(t *testing.T) {
		opts := applyOptions([]Option{WithBackup(".bak")})

		if opts.backupSuffix != ".bak" {
			t.Errorf("expected backupSuffix %q, got %q", ".bak", opts.backupSuffix)
		}
	})

	t.Run("WithValidation", func(t *testing.T) {
		opts := applyOptions([]Option{WithValidation()})

		if !opts.validate {
			t.Error("expected validate to be true")
		}
	})

	t.Run("WithPreserveModTime", func(t *testing.T) {
		opts := applyOptions([]Option{WithPreserveModTime()})

		if !opts.preserveModTime {
			t.Error("expected preserveModTime to be true")
		}
	})

	t.Run("WithPadding", func(t *testing.T) {
		opts := applyOptions([]Option{WithPadding(0)})

		if opts.padding != 0 {
			t.Errorf("expected padding 0, got %d", opts.padding)
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		opts := applyOptions([]Option{WithLogger(logger)})
		if opts.logger != logger {
			t.Error("expected logger to be set")
		}

		opts = applyOptions([]Option{WithLogger(nil)})
		if opts.logger == nil {
			t.Error("nil logger should keep the default")
		}
	})

	t.Run("all options combined", func(t *testing.T) {
		opts := applyOptions([]Option{
			WithBackup(".backup"),
			WithValidation(),
			WithPreserveModTime(),
			WithPadding(64),
		})

		if opts.backupSuffix != ".backup" {
			t.Errorf("expected backupSuffix %q, got %q", ".backup", opts.backupSuffix)
		}
		if !opts.validate {
			t.Error("expected validate to be true")
		}
		if !opts.preserveModTime {
			t.Error("expected preserveModTime to be true")
		}
		if opts.padding != 64 {
			t.Errorf("expected padding 64, got %d", opts.padding)
		}
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		opts := applyOptions([]Option{WithBackup(".first"), WithBackup(".second")})

		if opts.backupSuffix != ".second" {
			t.Errorf("expected backupSuffix %q, got %q", ".second", opts.backupSuffix)
		}
	})
}
