package tagframe

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/simonhull/tagframe/internal/id3v2"
	"github.com/simonhull/tagframe/internal/types"
)

// writeTag replaces the tag of the file at path with tag. Every failure is
// reported as a *WriteError.
func writeTag(path string, tag *id3v2.Tag, o *options) error {
	if err := saveTag(path, tag, o); err != nil {
		return &types.WriteError{Path: path, Err: err}
	}
	return nil
}

// saveTag writes tag followed by the audio that came after the old tag.
//
// This is an atomic operation: writes to a temporary file first, then renames
// to the original path. If any step fails, the original file remains unchanged.
func saveTag(path string, tag *id3v2.Tag, o *options) error { //nolint:gocyclo // Atomic file operations require sequential steps
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer src.Close() //nolint:errcheck // Read-only handle

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	size := info.Size()

	format, err := types.DetectFormat(src, size, path)
	if err != nil {
		return fmt.Errorf("detect format: %w", err)
	}
	if !format.AcceptsLeadingTag() {
		return &types.UnsupportedWriteError{
			Format: format,
			Reason: "a leading ID3v2 tag would corrupt the container",
		}
	}

	audioStart, err := audioOffset(src, size, path)
	if err != nil {
		return err
	}

	// Create temp file in same directory as output (for atomic rename)
	tempFile, err := os.CreateTemp(filepath.Dir(path), ".tagframe-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	// Ensure cleanup on any error
	success := false
	defer func() {
		if !success {
			_ = tempFile.Close()    //nolint:errcheck // Best effort cleanup
			_ = os.Remove(tempPath) //nolint:errcheck // Best effort cleanup
		}
	}()

	if err := tempFile.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	tagSize, err := id3v2.Encode(tempFile, tag, o.padding)
	if err != nil {
		return fmt.Errorf("encode tag: %w", err)
	}

	audio := io.NewSectionReader(src, audioStart, size-audioStart)
	if _, err := io.Copy(tempFile, audio); err != nil {
		return fmt.Errorf("copy audio: %w", err)
	}

	// Sync temp file (fsync) to ensure data is on disk
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	// Close temp file before rename
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	_ = src.Close() //nolint:errcheck // Read-only handle

	if o.backupSuffix != "" {
		if err := os.Rename(path, path+o.backupSuffix); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}

	// Atomic rename temp -> output
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("rename temp to output: %w", err)
	}

	// Mark success so defer doesn't clean up
	success = true

	if o.preserveModTime {
		_ = os.Chtimes(path, info.ModTime(), info.ModTime()) //nolint:errcheck // Non-fatal: file was written successfully
	}

	o.logger.Info("tag written",
		"path", path,
		"frames", tag.Len(),
		"tag_bytes", tagSize,
		"audio_bytes", size-audioStart,
	)

	if o.validate {
		if err := validateWrittenTag(path, tag); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	return nil
}

// audioOffset returns the offset of the first byte after the existing tag,
// or 0 when the file has none.
func audioOffset(r io.ReaderAt, size int64, path string) (int64, error) {
	h, err := id3v2.Locate(r, size, path)
	if errors.Is(err, id3v2.ErrNoTag) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("locate existing tag: %w", err)
	}
	return h.TotalSize(), nil
}

// validateWrittenTag re-reads the tag at path and compares its fingerprint
// with the one of the tag that was written.
func validateWrittenTag(path string, want *id3v2.Tag) error {
	written, err := id3v2.ReadFile(path)
	if err != nil {
		return fmt.Errorf("re-read: %w", err)
	}

	got, err := id3v2.FingerprintOf(written)
	if err != nil {
		return err
	}
	expected, err := id3v2.FingerprintOf(want)
	if err != nil {
		return err
	}

	if got != expected {
		return fmt.Errorf("fingerprint mismatch: got %s, want %s", got, expected)
	}
	return nil
}
