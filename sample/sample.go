package sample

import (
	"bytes"
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var endOfTrack = []byte{0xff, 0x2f, 0x00}

type voice struct {
	channel, key uint8
}

// Span cuts the window [fromTick, toTick) out of mf. Non-note events before
// the window (tempo, programs, meter) are kept and moved to its start, note
// events inside it keep their timing relative to fromTick, and notes still
// held at toTick are released there.
func Span(mf *smf.SMF, fromTick, toTick int64) (*smf.SMF, error) {
	res := smf.New()
	res.TimeFormat = mf.TimeFormat

	for i, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks int64
		lastTicks := fromTick
		held := make(map[voice]bool)

	TrackEventLoop:
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			if absTicks >= toTick {
				break TrackEventLoop
			}
			if bytes.Equal(evt.Message, endOfTrack) {
				continue
			}

			var channel, key, velocity uint8
			var isOn, isOff bool
			switch {
			case evt.Message.GetNoteOn(&channel, &key, &velocity):
				isOn, isOff = velocity > 0, velocity == 0
			case evt.Message.GetNoteOff(&channel, &key, &velocity):
				isOff = true
			}

			switch {
			case !isOn && !isOff:
				delta := int64(0)
				if absTicks > fromTick {
					delta = absTicks - lastTicks
					lastTicks = absTicks
				}
				newTrack.Add(uint32(delta), evt.Message)
			case absTicks < fromTick:
			case isOff && !held[voice{channel, key}]:
			default:
				held[voice{channel, key}] = isOn
				newTrack.Add(uint32(absTicks-lastTicks), evt.Message)
				lastTicks = absTicks
			}
		}

		var release []voice
		for v, on := range held {
			if on {
				release = append(release, v)
			}
		}
		sort.Slice(release, func(a, b int) bool {
			if release[a].channel != release[b].channel {
				return release[a].channel < release[b].channel
			}
			return release[a].key < release[b].key
		})
		for _, v := range release {
			newTrack.Add(uint32(toTick-lastTicks), midi.NoteOff(v.channel, v.key))
			lastTicks = toTick
		}

		newTrack.Close(0)
		if err := res.Add(newTrack); err != nil {
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
	}

	return res, nil
}
