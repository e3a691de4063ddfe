package chord

import (
	"github.com/jsphweid/chordal/constants"
	"github.com/jsphweid/chordal/model"
)

type quality struct {
	tag   model.Quality
	shape []model.PitchClass
	// relative frequency of the quality in common-practice repertoire; not
	// used when scoring
	prior float64
}

var qualities = []quality{
	{model.Major, []model.PitchClass{0, 4, 7}, .436},
	{model.Minor, []model.PitchClass{0, 3, 7}, .194},
	{model.Diminished, []model.PitchClass{0, 3, 6}, .018},
	{model.DominantSeventh, []model.PitchClass{0, 4, 7, 10}, .219},
	{model.HalfDiminished, []model.PitchClass{0, 3, 6, 10}, .037},
	{model.FullyDiminished, []model.PitchClass{0, 3, 6, 9}, .044},
}

// Template is one quality transposed onto one root.
type Template struct {
	Label model.Label
	Notes model.PitchClassSet
	Prior float64

	classes []model.PitchClass
}

// bank is ordered by root, then by quality. Scoring walks it in this order
// so tied labels always come back in the same order.
var bank = buildBank()

func buildBank() []Template {
	res := make([]Template, 0, constants.PitchClasses*len(qualities))
	for root := model.PitchClass(0); root < constants.PitchClasses; root++ {
		for _, q := range qualities {
			var notes model.PitchClassSet
			for _, offset := range q.shape {
				notes = notes.Add((root + offset) % constants.PitchClasses)
			}
			res = append(res, Template{
				Label:   model.Label{Root: root, Quality: q.tag},
				Notes:   notes,
				Prior:   q.prior,
				classes: notes.Classes(),
			})
		}
	}
	return res
}

func Qualities() []model.Quality {
	res := make([]model.Quality, 0, len(qualities))
	for _, q := range qualities {
		res = append(res, q.tag)
	}
	return res
}

// Templates returns a copy of the whole bank.
func Templates() []Template {
	res := make([]Template, len(bank))
	copy(res, bank)
	return res
}

func Lookup(l model.Label) (Template, bool) {
	for _, t := range bank {
		if t.Label == l {
			return t, true
		}
	}
	return Template{}, false
}
