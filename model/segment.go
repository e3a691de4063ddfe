package model

// Segment is one minimal segment of a score: the pitch classes sounding
// between two consecutive note boundaries.
type Segment struct {
	Index int   `json:"index"`
	Tick  int64 `json:"tick"`
	// microseconds from the start of the score
	Offset int64         `json:"offset"`
	Notes  PitchClassSet `json:"notes"`
}

// Span is a run of minimal segments [Start, End) chosen as one chord.
type Span struct {
	Start  int     `json:"start"`
	End    int     `json:"end"`
	Score  int     `json:"score"`
	Labels []Label `json:"labels"`
}

// Analysis is a labelled segmentation of a score. Spans are ordered and
// cover segments 0 .. Segments-2; the last segment only closes a span.
type Analysis struct {
	Segments int    `json:"segments"`
	Spans    []Span `json:"spans"`
}

// ByStart maps each span start index to its candidate labels.
func (a Analysis) ByStart() map[int][]Label {
	res := make(map[int][]Label, len(a.Spans))
	for _, s := range a.Spans {
		res[s.Start] = s.Labels
	}
	return res
}

func (a Analysis) Annotation() Annotation {
	ann := Annotation{Segments: a.Segments, Labels: make(map[int][]string, len(a.Spans))}
	for _, s := range a.Spans {
		ann.Labels[s.Start] = LabelStrings(s.Labels)
	}
	return ann
}

// Annotation is a sparse per-segment labelling: a label applies from the
// segment it is attached to until the next labelled segment.
type Annotation struct {
	Segments int              `json:"segments"`
	Labels   map[int][]string `json:"labels"`
}

type Comparison struct {
	Scores     []float64 `json:"scores"`
	Percentage float64   `json:"percentage"`
}
