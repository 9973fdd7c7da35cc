// Package quantize snaps note times onto a BPM-derived grid.
package quantize

import (
	"math"
	"sort"

	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/model"
)

type Quantizer struct {
	BPM          float64
	GridDivision int // 4 = sixteenth-note grid
}

// Snap returns the nearest grid multiple of t. Ties round up.
func (q Quantizer) Snap(t float64) float64 {
	beat := 60.0 / q.BPM
	subdivision := beat / float64(q.GridDivision)
	return math.Round(t/subdivision) * subdivision
}

// QuantizeNotes snaps every note, sorts by time, and drops notes landing
// within 10 ms of the previously kept one (first seen wins).
func (q Quantizer) QuantizeNotes(notes []model.Note) []model.Note {
	for i := range notes {
		notes[i].Time = q.Snap(notes[i].Time)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})

	var kept []model.Note
	lastTime := 0.0
	for _, n := range notes {
		if len(kept) == 0 || n.Time-lastTime > constants.DedupeEpsilon {
			kept = append(kept, n)
			lastTime = n.Time
		}
	}
	return kept
}
