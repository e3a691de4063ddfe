package chord

import (
	"math"

	"github.com/jsphweid/chordal/model"
)

// Tally accumulates the notes of consecutive minimal segments so a span
// can be scored without re-reading its segments. The zero value is an
// empty span.
type Tally struct {
	counts [12]int
	total  int
	seen   model.PitchClassSet
}

// Add appends one minimal segment. A pitch class counts once per segment.
func (t *Tally) Add(notes model.PitchClassSet) {
	for _, pc := range notes.Classes() {
		t.counts[pc]++
	}
	t.total += notes.Len()
	t.seen |= notes
}

// Score rates the span against every template: S = P - (M + N), with P the
// note occurrences inside the template, N those outside it and M the
// template notes never heard. It returns the best S and every label that
// reaches it, in bank order.
func (t *Tally) Score() (int, []model.Label) {
	best := math.MinInt
	var labels []model.Label
	for _, tmpl := range bank {
		p := 0
		for _, pc := range tmpl.classes {
			p += t.counts[pc]
		}
		n := t.total - p
		m := tmpl.Notes.Len() - t.seen.Intersect(tmpl.Notes).Len()
		s := p - (m + n)

		switch {
		case s > best:
			best = s
			labels = append(labels[:0], tmpl.Label)
		case s == best:
			labels = append(labels, tmpl.Label)
		}
	}
	return best, labels
}

// Score rates the span made of the given minimal segments.
func Score(groups ...model.PitchClassSet) (int, []model.Label) {
	var t Tally
	for _, g := range groups {
		t.Add(g)
	}
	return t.Score()
}
