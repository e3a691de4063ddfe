// Package analysis segments a score into chords: it scores every span of
// consecutive minimal segments, picks the partition with the highest total
// score and labels each chosen span.
package analysis

import (
	"context"

	"github.com/jsphweid/chordal/model"
)

func Analyze(segments []model.Segment) model.Analysis {
	g := Build(segments)
	return Annotate(Solve(g), g)
}

func AnalyzeConcurrent(ctx context.Context, segments []model.Segment, workers int) (model.Analysis, error) {
	g, err := BuildConcurrent(ctx, segments, workers)
	if err != nil {
		return model.Analysis{}, err
	}
	return Annotate(Solve(g), g), nil
}

// Segments wraps bare pitch-class sets as minimal segments in the given order.
func Segments(notes []model.PitchClassSet) []model.Segment {
	res := make([]model.Segment, 0, len(notes))
	for i, n := range notes {
		res = append(res, model.Segment{Index: i, Notes: n})
	}
	return res
}
