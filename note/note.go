package note

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidNoteName = errors.New("invalid note name")

// Names spells each pitch class with sharps, C = 0.
var Names = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var naturals = map[byte]int{
	'C': 0,
	'D': 2,
	'E': 4,
	'F': 5,
	'G': 7,
	'A': 9,
	'B': 11,
}

// PitchClass converts a spelled note name ("C#", "Db", "E-", "F##", "Bb4")
// into a pitch class in [0, 11]. Any "b" after the letter is a flat, never
// the note B. A trailing octave number is accepted and ignored.
func PitchClass(text string) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidNoteName)
	}

	base, ok := naturals[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, text)
	}

	offset := 0
	inOctave := false
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9':
			inOctave = true
		case inOctave:
			return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, text)
		case r == '#' || r == '♯':
			offset++
		case r == 'b' || r == '-' || r == '♭':
			offset--
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, text)
		}
	}

	return ((base+offset)%12 + 12) % 12, nil
}

// FromKey returns the pitch class of a MIDI key number.
func FromKey(key uint8) int {
	return int(key % 12)
}

func Name(pitchClass int) string {
	return Names[((pitchClass%12)+12)%12]
}
