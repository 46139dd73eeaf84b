package tagframe

// WithBackup keeps the original file before replacing it.
//
// The backup file will have the specified suffix appended to the original
// filename. For example, WithBackup(".bak") will keep "song.mp3.bak"
// next to the rewritten "song.mp3".
//
// If the backup file already exists, it will be overwritten.
//
// Example:
//
//	records, err := tagframe.UpdateTag("song.mp3", edits, tagframe.WithBackup(".bak"))
//	// Original file preserved as song.mp3.bak
func WithBackup(suffix string) Option {
	return func(o *options) {
		o.backupSuffix = suffix
	}
}

// WithValidation re-reads the file after writing to verify integrity.
//
// After writing, the tag is decoded again and its fingerprint compared with
// the fingerprint of the tag that was written. A mismatch fails the update
// with a WriteError; the file has already been replaced at that point.
//
// Example:
//
//	records, err := tagframe.UpdateTag("song.mp3", edits, tagframe.WithValidation())
func WithValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}

// WithPreserveModTime keeps the original file modification time.
//
// By default, writing updates the file's modification time to the current
// time. This option restores the original modification time.
//
// Example:
//
//	records, err := tagframe.UpdateTag("song.mp3", edits, tagframe.WithPreserveModTime())
func WithPreserveModTime() Option {
	return func(o *options) {
		o.preserveModTime = true
	}
}

// WithPadding sets the number of zero bytes written after the last frame.
//
// Padding leaves room for other tag editors that rewrite frames in place.
// Every UpdateTag rewrites the whole file whatever the padding. The default
// is 1024. Negative values fail the write.
func WithPadding(n int) Option {
	return func(o *options) {
		o.padding = n
	}
}
