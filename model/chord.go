package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/chordal/note"
)

var ErrInvalidLabel = errors.New("invalid chord label")

// Quality is the tag written after the root in a label, e.g. "dom7" in F#_dom7.
type Quality string

const (
	Major           Quality = "maj"
	Minor           Quality = "min"
	Diminished      Quality = "dim"
	DominantSeventh Quality = "dom7"
	HalfDiminished  Quality = "hdim"
	FullyDiminished Quality = "fdim"
)

type Label struct {
	Root    PitchClass
	Quality Quality
}

// String renders the ROOT_QUALITY tag other tooling reads back, e.g. C_maj.
func (l Label) String() string {
	return fmt.Sprintf("%v_%v", l.Root, l.Quality)
}

// ParseLabel reads a ROOT_QUALITY tag. The root may be spelled with any
// accidentals; fields after the second underscore are dropped.
func ParseLabel(text string) (Label, error) {
	parts := strings.SplitN(strings.TrimSpace(text), "_", 3)
	if len(parts) < 2 || parts[1] == "" {
		return Label{}, fmt.Errorf("%w: %q", ErrInvalidLabel, text)
	}
	pc, err := note.PitchClass(parts[0])
	if err != nil {
		return Label{}, fmt.Errorf("%w: %v", ErrInvalidLabel, err)
	}
	return Label{Root: PitchClass(pc), Quality: Quality(parts[1])}, nil
}

func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

func LabelStrings(labels []Label) []string {
	res := make([]string, 0, len(labels))
	for _, l := range labels {
		res = append(res, l.String())
	}
	return res
}
