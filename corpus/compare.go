package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/jsphweid/chordal/compare"
	"github.com/jsphweid/chordal/file"
	"github.com/jsphweid/chordal/logging"
	"github.com/jsphweid/chordal/midi"
	"github.com/jsphweid/chordal/model"
	"golang.org/x/sync/errgroup"
)

// Report is the outcome of comparing a set of ground-truth files.
type Report struct {
	Records []model.ComparisonRecord `json:"records"`
	Skipped []string                 `json:"skipped"`
	Summary compare.Summary          `json:"summary"`
}

func (r Report) Percentages() []float64 {
	res := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		res[i] = rec.Percentage
	}
	return res
}

// CompareFile scores the analysis at guessPath against the lyric labels
// of truthPath.
func CompareFile(truthPath, guessPath string) (model.ComparisonRecord, error) {
	truth, err := midi.ReadAnnotation(truthPath)
	if err != nil {
		return model.ComparisonRecord{}, fmt.Errorf("ground truth: %w", err)
	}
	guess, err := midi.ReadAnnotation(guessPath)
	if err != nil {
		return model.ComparisonRecord{}, fmt.Errorf("guess: %w", err)
	}

	c, err := compare.Sequences(truth, guess)
	if err != nil {
		return model.ComparisonRecord{}, fmt.Errorf("%s: %w", truthPath, err)
	}
	return model.ComparisonRecord{
		File:       truthPath,
		GuessFile:  guessPath,
		Segments:   truth.Segments,
		Scores:     c.Scores,
		Percentage: c.Percentage,
		ComparedAt: time.Now().UTC(),
	}, nil
}

// CompareAll pairs every ground-truth file with its analysis in guessDir.
// Files that cannot be compared are logged and listed as skipped.
func CompareAll(ctx context.Context, truthFiles []string, guessDir string, workers int) (Report, error) {
	records := make([]*model.ComparisonRecord, len(truthFiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(workers))
	for i, truthPath := range truthFiles {
		i, truthPath := i, truthPath
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := CompareFile(truthPath, file.GuessPath(guessDir, truthPath))
			if err != nil {
				logging.Error(err, "skipping", logging.Fields{"file": truthPath})
				return nil
			}
			logging.Debug("compared", logging.Fields{"file": truthPath, "percentage": rec.Percentage})
			records[i] = &rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	var report Report
	for i, rec := range records {
		if rec == nil {
			report.Skipped = append(report.Skipped, truthFiles[i])
			continue
		}
		report.Records = append(report.Records, *rec)
	}
	report.Summary = compare.Summarize(report.Percentages())
	return report, nil
}
