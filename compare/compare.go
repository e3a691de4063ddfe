// Package compare scores a chord analysis against a ground-truth
// annotation of the same score.
package compare

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/chordal/constants"
	"github.com/jsphweid/chordal/model"
	"github.com/jsphweid/chordal/note"
	"gonum.org/v1/gonum/floats"
)

var ErrAlignmentMismatch = errors.New("ground truth and guess differ in segment count")

func split(label string) (int, string, bool) {
	parts := strings.SplitN(label, "_", 3)
	if len(parts) < 2 {
		return 0, "", false
	}
	pc, err := note.PitchClass(parts[0])
	if err != nil {
		return 0, "", false
	}
	return pc, parts[1], true
}

// LabelsEqual reports whether two ROOT_QUALITY labels name the same chord.
// Roots are compared as pitch classes (C#_maj == Db_maj), qualities as
// exact tags. Unparseable labels never match.
func LabelsEqual(a, b string) bool {
	pa, qa, ok := split(a)
	if !ok {
		return false
	}
	pb, qb, ok := split(b)
	if !ok {
		return false
	}
	return pa == pb && qa == qb
}

// ScoreSegment gives 1/len(possible) when truth matches any candidate and
// 0 otherwise, so ambiguous guesses earn less than a single right one.
func ScoreSegment(truth string, possible []string) float64 {
	for _, p := range possible {
		if LabelsEqual(truth, p) {
			return 1.0 / float64(len(possible))
		}
	}
	return 0
}

// IsUnknown reports whether a ground-truth label is missing or marked as
// unanalysable.
func IsUnknown(label string) bool {
	return label == "" || strings.Contains(label, constants.UnknownLabelMarker)
}

// Sequences walks both annotations segment by segment, carrying each label
// forward until the next one. Segments whose ground truth is unknown are
// left out of both the scores and the percentage. Annotations of different
// length are not compared: the result is empty and ErrAlignmentMismatch is
// returned.
func Sequences(truth, guess model.Annotation) (model.Comparison, error) {
	if truth.Segments != guess.Segments {
		return model.Comparison{}, fmt.Errorf("%w: %d vs %d", ErrAlignmentMismatch, truth.Segments, guess.Segments)
	}

	scores := make([]float64, 0, truth.Segments)
	var currTruth string
	var currGuess []string
	for i := 0; i < truth.Segments; i++ {
		if labels := truth.Labels[i]; len(labels) > 0 {
			currTruth = labels[0]
		}
		if labels := guess.Labels[i]; len(labels) > 0 {
			currGuess = labels
		}
		if IsUnknown(currTruth) {
			continue
		}
		scores = append(scores, ScoreSegment(currTruth, currGuess))
	}

	var percentage float64
	if len(scores) > 0 {
		percentage = 100 * floats.Sum(scores) / float64(len(scores))
	}
	return model.Comparison{Scores: scores, Percentage: percentage}, nil
}
