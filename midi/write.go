package midi

import (
	"fmt"

	"github.com/jsphweid/chordal/constants"
	"github.com/jsphweid/chordal/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Annotate returns a copy of s with one extra track holding every
// candidate label of the analysis as a lyric at the tick of the span's
// first segment. Existing lyrics are left out of the copy so earlier
// annotations cannot leak into a new one.
func Annotate(s *smf.SMF, segments []model.Segment, a model.Analysis) (*smf.SMF, error) {
	res := smf.New()
	res.TimeFormat = s.TimeFormat

	for _, track := range s.Tracks {
		var kept smf.Track
		var pending uint32
		for _, event := range track {
			var text string
			if event.Message.GetMetaLyric(&text) {
				pending += event.Delta
				continue
			}
			kept = append(kept, smf.Event{Delta: event.Delta + pending, Message: event.Message})
			pending = 0
		}
		kept.Close(pending)
		if err := res.Add(kept); err != nil {
			return nil, fmt.Errorf("copying track: %w", err)
		}
	}

	var labels smf.Track
	labels.Add(0, smf.MetaTrackSequenceName(constants.AnalysisTrackName))
	var last int64
	for _, span := range a.Spans {
		if span.Start >= len(segments) {
			return nil, fmt.Errorf("span starts at segment %d of %d", span.Start, len(segments))
		}
		tick := segments[span.Start].Tick
		for i, l := range span.Labels {
			var delta uint32
			if i == 0 {
				delta = uint32(tick - last)
			}
			labels.Add(delta, smf.MetaLyric(l.String()))
		}
		last = tick
	}
	labels.Close(0)

	if err := res.Add(labels); err != nil {
		return nil, fmt.Errorf("adding analysis track: %w", err)
	}
	return res, nil
}

func WriteAnnotated(path string, s *smf.SMF, segments []model.Segment, a model.Analysis) error {
	annotated, err := Annotate(s, segments, a)
	if err != nil {
		return err
	}
	if err := annotated.WriteFile(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
