package model

import (
	"encoding/json"
	"fmt"
	"math/bits"

	"github.com/jsphweid/chordal/note"
)

type PitchClass uint8

func (pc PitchClass) String() string {
	return note.Name(int(pc))
}

// PitchClassSet is a bitmask over the 12 pitch classes, bit n set for
// pitch class n. Octave and doubling are gone by construction.
type PitchClassSet uint16

func NewPitchClassSet(pcs ...PitchClass) PitchClassSet {
	var s PitchClassSet
	for _, pc := range pcs {
		s = s.Add(pc)
	}
	return s
}

func (s PitchClassSet) Add(pc PitchClass) PitchClassSet {
	return s | 1<<(pc%12)
}

func (s PitchClassSet) Has(pc PitchClass) bool {
	return pc < 12 && s&(1<<pc) != 0
}

func (s PitchClassSet) Len() int {
	return bits.OnesCount16(uint16(s))
}

func (s PitchClassSet) Intersect(o PitchClassSet) PitchClassSet {
	return s & o
}

// Classes lists the members in ascending order.
func (s PitchClassSet) Classes() []PitchClass {
	res := make([]PitchClass, 0, s.Len())
	for pc := PitchClass(0); pc < 12; pc++ {
		if s.Has(pc) {
			res = append(res, pc)
		}
	}
	return res
}

func (s PitchClassSet) ints() []int {
	res := make([]int, 0, s.Len())
	for _, pc := range s.Classes() {
		res = append(res, int(pc))
	}
	return res
}

func (s PitchClassSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ints())
}

func (s *PitchClassSet) UnmarshalJSON(data []byte) error {
	var pcs []int
	if err := json.Unmarshal(data, &pcs); err != nil {
		return err
	}
	var res PitchClassSet
	for _, pc := range pcs {
		if pc < 0 || pc > 11 {
			return fmt.Errorf("pitch class %d out of range [0, 11]", pc)
		}
		res = res.Add(PitchClass(pc))
	}
	*s = res
	return nil
}

func (s PitchClassSet) MarshalYAML() (interface{}, error) {
	return s.ints(), nil
}
