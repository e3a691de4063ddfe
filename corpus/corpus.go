// Package corpus runs the analyser and the comparator over whole
// directories of scores.
package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/facette/natsort"
	"github.com/jsphweid/chordal/analysis"
	"github.com/jsphweid/chordal/constants"
	"github.com/jsphweid/chordal/file"
	"github.com/jsphweid/chordal/logging"
	"github.com/jsphweid/chordal/midi"
	"github.com/jsphweid/chordal/model"
	"github.com/jsphweid/chordal/store"
	"github.com/jsphweid/chordal/util"
	"golang.org/x/sync/errgroup"
)

// Gather lists the MIDI files under dir in natural order, leaving out
// previously written analyses. A positive max keeps only the first max.
func Gather(dir string, max int) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !file.IsMidi(path) {
			return nil
		}
		if strings.HasSuffix(file.Base(path), constants.AnalysisSuffix) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gathering midi files in %s: %w", dir, err)
	}

	natsort.Sort(paths)
	if max > 0 && len(paths) > max {
		paths = paths[:max]
	}
	return paths, nil
}

func workerCount(workers int) int {
	if workers <= 0 {
		return runtime.NumCPU()
	}
	return workers
}

// AnalyzeFile segments one score, finds its best chord spans and writes
// the annotated score and a JSON copy of the run into outDir.
func AnalyzeFile(ctx context.Context, path, outDir string, workers int) (model.Run, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return model.Run{}, err
	}
	segments, err := midi.Segments(s)
	if err != nil {
		return model.Run{}, fmt.Errorf("%s: %w", path, err)
	}
	a, err := analysis.AnalyzeConcurrent(ctx, segments, workers)
	if err != nil {
		return model.Run{}, err
	}

	if err := util.EnsureDir(outDir); err != nil {
		return model.Run{}, err
	}
	if err := midi.WriteAnnotated(file.AnalysisMidiPath(outDir, path), s, segments, a); err != nil {
		return model.Run{}, err
	}

	run := store.NewRun(path, segments, a)
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return model.Run{}, fmt.Errorf("encoding analysis of %s: %w", path, err)
	}
	jsonPath := file.AnalysisJSONPath(outDir, path)
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return model.Run{}, fmt.Errorf("writing %s: %w", jsonPath, err)
	}
	return run, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// AnalyzeAll analyses files concurrently. Files whose annotated output
// already exists are skipped, as are files that fail; both are logged.
// Runs come back in input order.
func AnalyzeAll(ctx context.Context, files []string, outDir string, workers int) ([]model.Run, error) {
	fileNums := file.CreateFileNumMap(files)
	keys := util.GetKeys(fileNums)
	runs := make([]*model.Run, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(workers))
	for i, num := range keys {
		i, path := i, fileNums[num]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			log := logging.WithFields(logging.Fields{"file": path})
			log.Debug(fmt.Sprintf("processing %v of %v midi files", i+1, len(keys)))

			if exists(file.AnalysisMidiPath(outDir, path)) {
				log.Info("skipping, analysis already exists")
				return nil
			}
			// one file per worker; its graph is built on a single goroutine
			run, err := AnalyzeFile(ctx, path, outDir, 1)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				log.Error(err, "skipping")
				return nil
			}
			log.Info("analysed", logging.Fields{"segments": len(run.Segments), "spans": len(run.Analysis.Spans)})
			runs[i] = &run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make([]model.Run, 0, len(runs))
	for _, r := range runs {
		if r != nil {
			res = append(res, *r)
		}
	}
	return res, nil
}
