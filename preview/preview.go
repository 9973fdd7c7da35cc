// Package preview renders a chart as a standard MIDI file so generated
// charts can be auditioned in any sequencer. Lanes map to ascending
// pitches on one track; holds become note lengths.
package preview

import (
	"fmt"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/notefall/charter/chart"
	"github.com/notefall/charter/constants"
)

const (
	ticksPerQuarter = 960
	baseKey         = 60 // middle C for lane 0
	laneInterval    = 2  // whole tones keep lanes distinct to the ear
	velocity        = 100
)

// Encode builds the SMF document for a chart. Taps sound for one grid
// subdivision so they are audible.
func Encode(c chart.Chart) (*smf.SMF, error) {
	bpm := c.BPM
	if bpm <= 0 {
		bpm = constants.DefaultBPM
	}
	tapLength := 60.0 / bpm / float64(constants.DefaultGridDivision)

	secondsToTicks := func(t float64) int64 {
		return int64(math.Round(t * bpm / 60.0 * ticksPerQuarter))
	}

	type event struct {
		tick int64
		on   bool
		key  uint8
	}

	events := make([]event, 0, len(c.Notes)*2)
	for _, n := range c.Notes {
		if n.Col < 0 {
			return nil, fmt.Errorf("note at %.3f has negative lane %d", n.Time, n.Col)
		}
		key := uint8(baseKey + n.Col*laneInterval)
		length := n.Duration
		if length < constants.MinExportDuration {
			length = tapLength
		}
		events = append(events,
			event{tick: secondsToTicks(n.Time), on: true, key: key},
			event{tick: secondsToTicks(n.Time + length), on: false, key: key},
		)
	}

	// offs sort before ons at the same tick so retriggers re-strike
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return !events[i].on && events[j].on
	})

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(c.SongID+" "+c.Instrument+" "+c.Difficulty))
	tr.Add(0, smf.MetaTempo(bpm))

	var lastTick int64
	for _, ev := range events {
		delta := uint32(ev.tick - lastTick)
		lastTick = ev.tick
		if ev.on {
			tr.Add(delta, midi.NoteOn(0, ev.key, velocity))
		} else {
			tr.Add(delta, midi.NoteOff(0, ev.key))
		}
	}
	tr.Close(0)

	if err := s.Add(tr); err != nil {
		return nil, fmt.Errorf("adding preview track: %w", err)
	}
	return s, nil
}

// WriteFile renders the chart to a .mid file.
func WriteFile(c chart.Chart, path string) error {
	s, err := Encode(c)
	if err != nil {
		return err
	}
	return s.WriteFile(path)
}
