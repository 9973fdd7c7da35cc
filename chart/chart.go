// Package chart assembles pipeline notes into the exported chart
// representation and handles its encodings.
package chart

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/difficulty"
	"github.com/notefall/charter/model"
)

// Note is the exported form of a pipeline note. Durations under a
// millisecond are omitted from JSON and read back as 0.
type Note struct {
	Time     float64 `json:"time"`
	Col      int     `json:"col"`
	Duration float64 `json:"duration,omitempty"`
}

func (n Note) MarshalJSON() ([]byte, error) {
	type wire struct {
		Time     float64  `json:"time"`
		Col      int      `json:"col"`
		Duration *float64 `json:"duration,omitempty"`
	}
	w := wire{Time: n.Time, Col: n.Col}
	if n.Duration >= constants.MinExportDuration {
		w.Duration = &n.Duration
	}
	return json.Marshal(w)
}

// Chart is one (instrument, difficulty) result. It is immutable after
// Assemble: notes are time-ascending with no same-lane duplicates within
// 10 ms.
type Chart struct {
	SongID      string  `json:"song_id"`
	Instrument  string  `json:"instrument"`
	Difficulty  string  `json:"difficulty"`
	Columns     int     `json:"columns"`
	BPM         float64 `json:"bpm"`
	GeneratedAt int64   `json:"generated_at"`
	Notes       []Note  `json:"notes"`
}

// Assemble packages notes into a fresh Chart, sorting by time and
// enforcing the no-duplicate invariant.
func Assemble(songID, instrument string, level difficulty.Level, bpm float64, notes []model.Note) Chart {
	sorted := make([]model.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	// last kept time per lane, for the 10ms same-lane dedupe
	lastByLane := make(map[int]float64)
	exported := make([]Note, 0, len(sorted))
	for _, n := range sorted {
		if last, seen := lastByLane[n.Lane]; seen && n.Time-last <= constants.DedupeEpsilon {
			continue
		}
		lastByLane[n.Lane] = n.Time
		exported = append(exported, Note{Time: n.Time, Col: n.Lane, Duration: n.Duration})
	}

	return Chart{
		SongID:      songID,
		Instrument:  instrument,
		Difficulty:  string(level),
		Columns:     level.Lanes(),
		BPM:         bpm,
		GeneratedAt: time.Now().Unix(),
		Notes:       exported,
	}
}
