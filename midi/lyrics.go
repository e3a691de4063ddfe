package midi

import (
	"strings"

	"github.com/jsphweid/chordal/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// NormalizeLabel keeps the ROOT_QUALITY part of a lyric, dropping any
// further underscore fields ("C_maj_I" -> "C_maj").
func NormalizeLabel(lyric string) string {
	lyric = strings.TrimSpace(lyric)
	parts := strings.SplitN(lyric, "_", 3)
	if len(parts) < 2 {
		return lyric
	}
	return parts[0] + "_" + parts[1]
}

// Labels collects the chord labels stored as lyric meta events and attaches
// each to the segment sounding at its tick. Lyrics before the first segment
// are dropped. Within a segment labels keep track order, then time order.
func Labels(s *smf.SMF, segments []model.Segment) model.Annotation {
	ann := model.Annotation{Segments: len(segments), Labels: make(map[int][]string)}
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var text string
			if !event.Message.GetMetaLyric(&text) {
				continue
			}
			text = NormalizeLabel(text)
			if text == "" {
				continue
			}
			idx := segmentAt(segments, absTicks)
			if idx < 0 {
				continue
			}
			ann.Labels[idx] = append(ann.Labels[idx], text)
		}
	}
	return ann
}

// ReadAnnotation reads a score and returns its segment count together with
// the labels found in its lyrics.
func ReadAnnotation(path string) (model.Annotation, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return model.Annotation{}, err
	}
	segments, err := Segments(s)
	if err != nil {
		return model.Annotation{}, err
	}
	return Labels(s, segments), nil
}
