package tagframe

import (
	"context"
	"errors"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/tagframe/internal/id3v2"
	"github.com/simonhull/tagframe/internal/record"
	"github.com/simonhull/tagframe/internal/types"
)

// LoadTag reads the ID3v2 tag of the file at path and returns its frames as
// Records, in tag order.
//
// A file without a tag yields an empty, non-nil slice. The file itself must
// exist; any failure to read it is a *ReadError. A frame whose content has
// no Record representation fails the whole call with an
// *UnsupportedContentError.
//
// Example:
//
//	records, err := tagframe.LoadTag("song.mp3")
//	if err != nil {
//		log.Fatal(err)
//	}
func LoadTag(path string, opts ...Option) ([]Record, error) {
	o := applyOptions(opts)

	tag, err := loadTag(path, o.logger)
	if err != nil {
		return nil, err
	}
	return record.FromTag(tag)
}

// loadTag decodes the tag at path. A missing tag is an empty tag.
func loadTag(path string, logger *slog.Logger) (*id3v2.Tag, error) {
	tag, err := id3v2.ReadFile(path)
	if errors.Is(err, id3v2.ErrNoTag) {
		logger.Debug("no existing tag", "path", path)
		return id3v2.NewTag(), nil
	}
	if err != nil {
		return nil, &types.ReadError{Path: path, Err: err}
	}

	logger.Debug("tag loaded",
		"path", path,
		"version", int(tag.Version),
		"frames", tag.Len(),
	)
	return tag, nil
}

// LoadMany loads the tags of multiple files concurrently.
//
// Files are read in parallel using up to runtime.NumCPU() goroutines.
// Results are returned in the same order as the input paths.
//
// If any file fails to load, or ctx is cancelled, the first error is
// returned and no results are.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	all, err := tagframe.LoadMany(ctx, paths)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for i, records := range all {
//		fmt.Printf("%s: %d frames\n", paths[i], len(records))
//	}
func LoadMany(ctx context.Context, paths []string, opts ...Option) ([][]Record, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([][]Record, len(paths))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			records, err := LoadTag(path, opts...)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
