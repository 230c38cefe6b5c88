// Package cache persists per-drive MFT dumps under a configured cache
// directory and hands back read views of them, per spec §4.4.
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ntfsview/ntfsview/internal/log"
	"github.com/ntfsview/ntfsview/internal/volume"
)

// ErrAlreadyCached is returned by Sync when overwrite is false and a cached
// dump for that drive already exists, per spec §4.4.
var ErrAlreadyCached = errors.New("cache: dump already exists; pass overwrite to replace it")

// fileName returns the cache file name for a drive letter, e.g. "C.mft".
func fileName(driveLetter byte) string {
	return fmt.Sprintf("%c.mft", driveLetter)
}

// Path returns the on-disk cache path for a drive letter within dir.
func Path(dir string, driveLetter byte) string {
	return filepath.Join(dir, fileName(driveLetter))
}

// Sync resolves pattern to a set of drive letters and dumps each drive's
// MFT to <dir>/<L>.mft in parallel, per spec §4.4. If overwrite is false
// and a cache file already exists for a drive, that drive fails with
// ErrAlreadyCached without touching the file; other drives in the same
// call are unaffected.
func Sync(ctx context.Context, dir string, pattern string, overwrite bool) error {
	drives, err := ResolvePattern(pattern)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "cache: create cache directory")
	}

	g, gCtx := errgroup.WithContext(ctx)
	for _, driveLetter := range drives {
		driveLetter := driveLetter
		g.Go(func() error {
			return syncOne(gCtx, dir, driveLetter, overwrite)
		})
	}
	return g.Wait()
}

func syncOne(ctx context.Context, dir string, driveLetter byte, overwrite bool) error {
	dest := Path(dir, driveLetter)
	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return errors.Wrapf(ErrAlreadyCached, "drive %c", driveLetter)
		}
	}

	log.Infof(fmt.Sprintf("drive %c:", driveLetter), "dumping MFT")
	data, err := volume.ReadMFT(driveLetter)
	if err != nil {
		return errors.Wrapf(err, "drive %c: read MFT", driveLetter)
	}

	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "drive %c: write cache file", driveLetter)
	}
	if err := os.Rename(tmp, dest); err != nil {
		return errors.Wrapf(err, "drive %c: finalize cache file", driveLetter)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	log.Infof(fmt.Sprintf("drive %c:", driveLetter), "cached %d bytes", len(data))
	return nil
}

// View is a read-only handle on one drive's cached MFT dump.
type View struct {
	DriveLetter byte
	Path        string
	Data        []byte
}

// Open resolves pattern against the cache directory's existing files and
// returns a View per matched drive, reading the whole dump into memory
// (rather than a true mmap, since no mmap implementation was carried over
// from the teacher pack — see DESIGN.md). It fails if none exist, per
// spec §4.4.
func Open(dir string, pattern string) ([]View, error) {
	drives, err := ResolvePattern(pattern)
	if err != nil {
		return nil, err
	}

	var views []View
	for _, driveLetter := range drives {
		path := Path(dir, driveLetter)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Wrapf(err, "cache: open %s", path)
		}
		views = append(views, View{DriveLetter: driveLetter, Path: path, Data: data})
	}
	if len(views) == 0 {
		return nil, errors.Errorf("cache: no cached MFT files found for pattern %q", pattern)
	}
	return views, nil
}
