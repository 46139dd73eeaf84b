package tagframe

import (
	"github.com/simonhull/tagframe/internal/merge"
	"github.com/simonhull/tagframe/internal/record"
)

// UpdateTag merges edits into the tag of the file at path, writes the tag
// back as ID3v2.4 and returns the resulting Records.
//
// Edits are applied in order; see the package documentation for the merge
// rules. After the edits the tag must only hold content that Records can
// represent, otherwise the call fails before anything is written. An edit
// removing such a frame by id therefore lets the rest of the tag be
// rewritten. Any failure aborts the call, and no write happens unless every
// edit applied.
//
// Example:
//
//	records, err := tagframe.UpdateTag("song.mp3", []tagframe.Record{
//		{Kind: tagframe.KindText, ID: "TIT2", Payload: tagframe.String("Song B")},
//	}, tagframe.WithBackup(".bak"))
func UpdateTag(path string, edits []Record, opts ...Option) ([]Record, error) {
	o := applyOptions(opts)

	tag, err := loadTag(path, o.logger)
	if err != nil {
		return nil, err
	}

	if err := merge.Apply(tag, edits, o.logger); err != nil {
		return nil, err
	}

	// A tag is only rewritten once every frame it holds maps to a Record.
	records, err := record.FromTag(tag)
	if err != nil {
		return nil, err
	}

	if err := writeTag(path, tag, o); err != nil {
		return nil, err
	}
	return records, nil
}
