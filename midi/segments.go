package midi

import (
	"sort"

	"github.com/jsphweid/chordal/model"
	"github.com/jsphweid/chordal/note"
	"gitlab.com/gomidi/midi/v2/smf"
)

type noteEvent struct {
	tick  int64
	key   uint8
	isOff bool
}

func noteEvents(s *smf.SMF) []noteEvent {
	var events []noteEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, noteEvent{tick: absTicks, key: key, isOff: velocity == 0})
			case event.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, noteEvent{tick: absTicks, key: key, isOff: true})
			}
		}
	}

	// earlier ticks first, and note offs before note ons on the same tick
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].isOff && !events[j].isOff
	})
	return events
}

// Segments chordifies every track of s into minimal segments: each tick at
// which a note starts or stops opens a new segment holding the pitch
// classes sounding from there on. Ticks where nothing sounds are rests and
// produce no segment.
func Segments(s *smf.SMF) ([]model.Segment, error) {
	events := noteEvents(s)

	var segments []model.Segment
	sounding := make(map[uint8]int)
	for i := 0; i < len(events); {
		tick := events[i].tick
		for ; i < len(events) && events[i].tick == tick; i++ {
			evt := events[i]
			if !evt.isOff {
				sounding[evt.key]++
				continue
			}
			if sounding[evt.key] <= 1 {
				delete(sounding, evt.key)
			} else {
				sounding[evt.key]--
			}
		}

		if len(sounding) == 0 {
			continue
		}
		var notes model.PitchClassSet
		for key := range sounding {
			notes = notes.Add(model.PitchClass(note.FromKey(key)))
		}
		segments = append(segments, model.Segment{
			Index:  len(segments),
			Tick:   tick,
			Offset: s.TimeAt(tick),
			Notes:  notes,
		})
	}

	if len(segments) == 0 {
		return nil, ErrNoSegments
	}
	return segments, nil
}

// segmentAt returns the index of the last segment starting at or before
// tick, or -1 when tick precedes the first segment.
func segmentAt(segments []model.Segment, tick int64) int {
	return sort.Search(len(segments), func(i int) bool {
		return segments[i].Tick > tick
	}) - 1
}
