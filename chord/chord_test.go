package chord

import (
	"fmt"
	"testing"

	"github.com/jsphweid/chordal/model"
	"github.com/stretchr/testify/assert"
)

func label(root model.PitchClass, q model.Quality) model.Label {
	return model.Label{Root: root, Quality: q}
}

func TestBankHasEveryRootAndQuality(t *testing.T) {
	templates := Templates()

	assert := assert.New(t)
	assert.Len(templates, 72)
	assert.Len(Qualities(), 6)

	seen := make(map[model.Label]bool)
	for _, tmpl := range templates {
		seen[tmpl.Label] = true
	}
	assert.Len(seen, 72)
}

func TestTemplatesAreTransposedShapes(t *testing.T) {
	cases := []struct {
		label model.Label
		notes model.PitchClassSet
	}{
		{label(0, model.Major), model.NewPitchClassSet(0, 4, 7)},
		{label(9, model.Minor), model.NewPitchClassSet(9, 0, 4)},
		{label(11, model.Diminished), model.NewPitchClassSet(11, 2, 5)},
		{label(7, model.DominantSeventh), model.NewPitchClassSet(7, 11, 2, 5)},
		{label(2, model.HalfDiminished), model.NewPitchClassSet(2, 5, 8, 0)},
		{label(10, model.FullyDiminished), model.NewPitchClassSet(10, 1, 4, 7)},
	}

	for _, c := range cases {
		t.Run(c.label.String(), func(t *testing.T) {
			tmpl, ok := Lookup(c.label)
			assert := assert.New(t)
			assert.True(ok)
			assert.Equal(c.notes, tmpl.Notes)
		})
	}
}

func TestTemplatesCopyDoesNotLeak(t *testing.T) {
	templates := Templates()
	templates[0].Notes = 0

	tmpl, _ := Lookup(label(0, model.Major))
	assert.Equal(t, model.NewPitchClassSet(0, 4, 7), tmpl.Notes)
}

func TestScoreSingleTriad(t *testing.T) {
	score, labels := Score(model.NewPitchClassSet(0, 4, 7))

	assert := assert.New(t)
	assert.Equal(3, score)
	assert.Equal([]model.Label{label(0, model.Major)}, labels)
}

func TestScoreCountsRepeatsAcrossSegments(t *testing.T) {
	c := model.NewPitchClassSet(0, 4, 7)
	score, labels := Score(c, c)

	assert := assert.New(t)
	assert.Equal(6, score)
	assert.Equal([]model.Label{label(0, model.Major)}, labels)
}

func TestScorePenalisesForeignAndMissingNotes(t *testing.T) {
	// G B D F: the dominant seventh beats both the G triad and B diminished
	score, labels := Score(model.NewPitchClassSet(7, 11, 2, 5))

	assert := assert.New(t)
	assert.Equal(4, score)
	assert.Equal([]model.Label{label(7, model.DominantSeventh)}, labels)

	// with the seventh in a separate segment it counts as one more occurrence
	score, labels = Score(model.NewPitchClassSet(7, 11, 2), model.NewPitchClassSet(5, 7))
	assert.Equal(5, score)
	assert.Equal([]model.Label{label(7, model.DominantSeventh)}, labels)
}

func TestScoreKeepsEveryTiedLabel(t *testing.T) {
	score, labels := Score(model.NewPitchClassSet(0, 4))

	assert := assert.New(t)
	assert.Equal(1, score)
	assert.Equal([]model.Label{label(0, model.Major), label(9, model.Minor)}, labels)

	score, labels = Score(model.NewPitchClassSet(0, 3, 6, 9))
	assert.Equal(4, score)
	assert.Equal([]model.Label{
		label(0, model.FullyDiminished),
		label(3, model.FullyDiminished),
		label(6, model.FullyDiminished),
		label(9, model.FullyDiminished),
	}, labels)
}

func TestScoreEmptySpan(t *testing.T) {
	score, labels := Score(model.PitchClassSet(0))

	assert := assert.New(t)
	assert.Equal(-3, score)
	assert.Len(labels, 36)
	for _, l := range labels {
		tmpl, _ := Lookup(l)
		assert.Equal(3, tmpl.Notes.Len())
	}

	noGroups, _ := Score()
	assert.Equal(-3, noGroups)
}

func TestScoreIsDeterministic(t *testing.T) {
	groups := []model.PitchClassSet{
		model.NewPitchClassSet(2, 5, 9),
		model.NewPitchClassSet(0, 4),
		model.NewPitchClassSet(11),
	}
	wantScore, wantLabels := Score(groups...)

	for i := 0; i < 20; i++ {
		t.Run(fmt.Sprintf("run %d", i), func(t *testing.T) {
			score, labels := Score(groups...)
			assert.Equal(t, wantScore, score)
			assert.Equal(t, wantLabels, labels)
		})
	}
}

func TestTallyMatchesScore(t *testing.T) {
	var tally Tally
	tally.Add(model.NewPitchClassSet(2, 5, 9))
	tally.Add(model.NewPitchClassSet(2, 5))

	score, labels := tally.Score()
	wantScore, wantLabels := Score(model.NewPitchClassSet(2, 5, 9), model.NewPitchClassSet(2, 5))

	assert := assert.New(t)
	assert.Equal(wantScore, score)
	assert.Equal(wantLabels, labels)
	assert.Equal(5, score)
	assert.Equal([]model.Label{label(2, model.Minor)}, labels)
}
