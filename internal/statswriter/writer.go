// Copyright (C) 2025 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package statswriter persists one run's outputs (creator_stats, processed
// creators, per-creator video partitions) as Parquet files under a fixed
// partition layout. Writing is all-or-nothing: every file is staged in a
// temp file next to its destination before any is renamed into place, so a
// failure never corrupts a previous run's files.
package statswriter

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"

	"github.com/creatorlake/creatorstats/internal/idgen"
	"github.com/creatorlake/creatorstats/internal/stats"
)

// ErrNoRunResult is returned when WriteRun is called without a run result.
var ErrNoRunResult = errors.New("statswriter: run result is nil")

// Result contains metadata about a single output file.
type Result struct {
	// FileName is the path of the created file, relative to the output root.
	FileName string

	// RecordCount is the number of rows written to this file.
	RecordCount int64

	// FileSize is the size of the file in bytes.
	FileSize int64
}

// Writer writes run outputs under its configured output root. A Writer is
// reusable across runs; each WriteRun call is independent.
type Writer struct {
	config Config
	gen    *idgen.ULIDGenerator
}

// New creates a Writer from the given config.
func New(config Config) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Writer{
		config: config,
		gen:    idgen.NewULIDGenerator(),
	}, nil
}

// WriteRun persists all three output record sets for one run date and
// returns metadata for the created files. On error, nothing from this run
// remains on disk and earlier runs' files are untouched. The writer never
// reads back or merges prior runs.
func (w *Writer) WriteRun(ctx context.Context, res *stats.RunResult, runDate time.Time) ([]Result, error) {
	if res == nil {
		return nil, ErrNoRunResult
	}

	run := newStagedRun(w.config.OutputRoot, w.gen)

	if err := stageParquet(ctx, run, StatsPath(runDate), res.Stats); err != nil {
		return nil, run.abort(err)
	}
	if err := stageParquet(ctx, run, CreatorsPath(runDate), res.Creators); err != nil {
		return nil, run.abort(err)
	}

	// One partition per distinct creator_id in the validated video set,
	// orphans included. groupVideos returns sorted IDs so the staging order
	// is deterministic.
	for _, group := range groupVideos(res.Videos) {
		path := VideoPartitionPath(group.creatorID, runDate)
		if err := stageParquet(ctx, run, path, group.videos); err != nil {
			return nil, run.abort(err)
		}
	}

	results, err := run.commit()
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		slog.Info("output file written",
			slog.String("file", r.FileName),
			slog.Int64("records", r.RecordCount),
			slog.Int64("bytes", r.FileSize))
	}
	return results, nil
}

type videoGroup struct {
	creatorID int64
	videos    []stats.Video
}

func groupVideos(videos []stats.Video) []videoGroup {
	byID := make(map[int64][]stats.Video)
	for _, v := range videos {
		byID[v.CreatorID] = append(byID[v.CreatorID], v)
	}
	out := make([]videoGroup, 0, len(byID))
	for id, group := range byID {
		out = append(out, videoGroup{creatorID: id, videos: group})
	}
	slices.SortFunc(out, func(a, b videoGroup) int {
		return cmp.Compare(a.creatorID, b.creatorID)
	})
	return out
}

// stagedRun tracks the temp files of one run until commit or abort.
type stagedRun struct {
	root      string
	gen       *idgen.ULIDGenerator
	staged    []stagedFile
	committed []string // absolute paths already renamed into place
}

type stagedFile struct {
	tmpPath   string
	finalPath string // relative to root
	records   int64
}

func newStagedRun(root string, gen *idgen.ULIDGenerator) *stagedRun {
	return &stagedRun{root: root, gen: gen}
}

// tempPath returns a unique staging path in the same directory as the final
// file, so the later rename stays within one filesystem and is atomic.
func (r *stagedRun) tempPath(finalPath string) string {
	dir := filepath.Dir(filepath.Join(r.root, finalPath))
	return filepath.Join(dir, ".staging-"+r.gen.Make(time.Now())+fileExt)
}

func (r *stagedRun) add(f stagedFile) {
	r.staged = append(r.staged, f)
}

// commit renames every staged file into place. A rename failure rolls the
// whole run back: remaining temp files and the files this run already
// renamed are all removed.
func (r *stagedRun) commit() ([]Result, error) {
	results := make([]Result, 0, len(r.staged))
	for i, f := range r.staged {
		target := filepath.Join(r.root, f.finalPath)
		if err := os.Rename(f.tmpPath, target); err != nil {
			r.staged = r.staged[i:]
			return nil, r.abort(fmt.Errorf("failed to finalize %s: %w", f.finalPath, err))
		}
		r.committed = append(r.committed, target)
		info, err := os.Stat(target)
		var size int64
		if err == nil {
			size = info.Size()
		}
		results = append(results, Result{
			FileName:    f.finalPath,
			RecordCount: f.records,
			FileSize:    size,
		})
	}
	r.staged = nil
	r.committed = nil
	return results, nil
}

// abort removes all remaining staged temp files plus anything this run
// already renamed into place, and returns cause combined with any cleanup
// failures.
func (r *stagedRun) abort(cause error) error {
	err := multierror.Append(nil, cause)
	for _, f := range r.staged {
		if removeErr := os.Remove(f.tmpPath); removeErr != nil && !os.IsNotExist(removeErr) {
			err = multierror.Append(err, removeErr)
		}
	}
	for _, target := range r.committed {
		if removeErr := os.Remove(target); removeErr != nil && !os.IsNotExist(removeErr) {
			err = multierror.Append(err, removeErr)
		}
	}
	r.staged = nil
	r.committed = nil
	return err.ErrorOrNil()
}
