package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ntfsview/ntfsview/internal/cache"
	"github.com/ntfsview/ntfsview/internal/fuzzyindex"
	"github.com/ntfsview/ntfsview/internal/log"
	"github.com/ntfsview/ntfsview/internal/mft"
	"github.com/ntfsview/ntfsview/internal/pathresolver"
)

// Source is one drive's cached MFT view, indexed for the Progress Event's
// file_index field.
type Source struct {
	FileIndex   int
	DriveLetter byte
	Data        []byte
}

// Run launches one worker per Source, fanning FileSizeDiscovered,
// RecordSizeDiscovered, per-record RecordHealth/Error/DiscoveredFiles/
// Progress, and a final Complete into a single unbuffered channel, per spec
// §4.5's worker protocol. The returned channel is closed once every worker has
// finished or ctx is cancelled.
func Run(ctx context.Context, sources []Source, index *fuzzyindex.Index) <-chan Event {
	out := make(chan Event)

	go func() {
		defer close(out)
		g, gCtx := errgroup.WithContext(ctx)
		for _, src := range sources {
			src := src
			g.Go(func() error {
				runWorker(gCtx, src, out, index)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return out
}

func send(ctx context.Context, out chan<- Event, ev Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func runWorker(ctx context.Context, src Source, out chan<- Event, index *fuzzyindex.Index) {
	subject := fmt.Sprintf("drive %c:", src.DriveLetter)

	if !send(ctx, out, Event{Kind: EventFileSizeDiscovered, FileIndex: src.FileIndex, FileSize: int64(len(src.Data))}) {
		return
	}

	parser := mft.NewParser(src.Data)
	if !send(ctx, out, Event{Kind: EventRecordSizeDiscovered, FileIndex: src.FileIndex, RecordSize: parser.RecordSize()}) {
		return
	}

	resolver := pathresolver.New(src.DriveLetter)
	recordSize := int64(parser.RecordSize())

	for record := range parser.Records() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !send(ctx, out, Event{Kind: EventRecordHealth, FileIndex: src.FileIndex, RecordHealthy: record.Healthy}) {
			return
		}
		if !record.Healthy {
			if !send(ctx, out, Event{Kind: EventError, FileIndex: src.FileIndex, Err: record.ParseError}) {
				return
			}
			if !send(ctx, out, Event{Kind: EventProgress, FileIndex: src.FileIndex, ProgressBytes: recordSize}) {
				return
			}
			continue
		}

		fn, ok := mft.FirstFilteredFileName(record)
		if ok {
			resolved := resolver.Insert(uint64(record.RecordNumber), fn.Name, fn.ParentRecordNumber, true, fn)
			discovered := toDiscoveredFiles(resolved)
			if len(discovered) > 0 {
				pushAll(index, discovered)
				if !send(ctx, out, Event{Kind: EventDiscoveredFiles, FileIndex: src.FileIndex, DiscoveredMany: discovered}) {
					return
				}
			}
		}

		if !send(ctx, out, Event{Kind: EventProgress, FileIndex: src.FileIndex, ProgressBytes: recordSize}) {
			return
		}
	}

	flushed := resolver.Flush()
	if len(flushed) > 0 {
		discovered := toDiscoveredFiles(flushed)
		pushAll(index, discovered)
		if !send(ctx, out, Event{Kind: EventDiscoveredFiles, FileIndex: src.FileIndex, DiscoveredMany: discovered}) {
			return
		}
	}

	log.Infof(subject, "analysis complete")
	send(ctx, out, Event{Kind: EventComplete, FileIndex: src.FileIndex})
}

func toDiscoveredFiles(resolved []pathresolver.Resolved) []DiscoveredFile {
	out := make([]DiscoveredFile, 0, len(resolved))
	for _, r := range resolved {
		df := DiscoveredFile{RecordNumber: r.RecordNumber, FullPath: r.Path, Fallback: r.Fallback}
		if fn, ok := r.Meta.(mft.FileNameAttribute); ok {
			df.Created, df.Modified, df.Accessed = fn.Created, fn.Modified, fn.Accessed
		}
		out = append(out, df)
	}
	return out
}

func pushAll(index *fuzzyindex.Index, files []DiscoveredFile) {
	if index == nil {
		return
	}
	for _, f := range files {
		index.Push(f.FullPath)
	}
}

// Sources builds a Source slice from cache Views, assigning each a stable
// FileIndex in input order.
func Sources(views []cache.View) []Source {
	out := make([]Source, 0, len(views))
	for i, v := range views {
		out = append(out, Source{FileIndex: i, DriveLetter: v.DriveLetter, Data: v.Data})
	}
	return out
}
