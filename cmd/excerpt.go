package cmd

import (
	"errors"
	"fmt"

	chordalmidi "github.com/jsphweid/chordal/midi"
	"github.com/jsphweid/chordal/model"
	"github.com/jsphweid/chordal/sample"
)

// writeExcerpt cuts span i out of the score at path. The span ends where
// its closing segment starts.
func writeExcerpt(path string, segments []model.Segment, spans []model.Span, i int, out string) error {
	if path == "" {
		return errors.New("run has no source score")
	}
	if i >= len(spans) {
		return fmt.Errorf("span %d out of range, run has %d", i, len(spans))
	}
	span := spans[i]
	if span.End >= len(segments) {
		return fmt.Errorf("span %d ends past the last segment", i)
	}

	s, err := chordalmidi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	excerpt, err := sample.Span(s, segments[span.Start].Tick, segments[span.End].Tick)
	if err != nil {
		return err
	}
	if err := excerpt.WriteFile(out); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	return nil
}
