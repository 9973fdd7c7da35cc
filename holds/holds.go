// Package holds extends taps into holds where band energy persists, and
// merges same-lane notes separated by small gaps.
package holds

import (
	"math"
	"sort"

	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/model"
)

type Detector struct {
	SustainThreshold float64 // band energy that keeps a hold alive
	MinHoldDuration  float64 // seconds; shorter sustains stay taps
}

// LaneRange is the frequency band scanned for sustain on one lane.
type LaneRange struct {
	Lane   int
	LowHz  float64
	HighHz float64
}

// DefaultLaneRanges covers five lanes from low bass to highs.
func DefaultLaneRanges() []LaneRange {
	return []LaneRange{
		{Lane: 0, LowHz: 50, HighHz: 150},
		{Lane: 1, LowHz: 150, HighHz: 300},
		{Lane: 2, LowHz: 300, HighHz: 600},
		{Lane: 3, LowHz: 600, HighHz: 2000},
		{Lane: 4, LowHz: 2000, HighHz: 8000},
	}
}

// DetectHolds scans forward from each note through the time-ordered
// spectra, extending the hold while its lane's band energy stays at or
// above the threshold. Durations below MinHoldDuration leave the note a
// tap. Spectra must be sorted by time and binned at 100 Hz (spectral.Rebin).
func (d Detector) DetectHolds(notes []model.Note, spectra []model.Spectrum, ranges []LaneRange) []model.Note {
	if len(spectra) == 0 {
		return notes
	}

	for i := range notes {
		r, ok := rangeForLane(ranges, notes[i].Lane)
		if !ok {
			continue
		}
		duration := d.sustainDuration(spectra, notes[i].Time, r)
		if duration >= d.MinHoldDuration {
			notes[i].Duration = duration
		}
	}
	return notes
}

func rangeForLane(ranges []LaneRange, lane int) (LaneRange, bool) {
	for _, r := range ranges {
		if r.Lane == lane {
			return r, true
		}
	}
	return LaneRange{}, false
}

func (d Detector) sustainDuration(spectra []model.Spectrum, start float64, r LaneRange) float64 {
	idx := sort.Search(len(spectra), func(i int) bool {
		return spectra[i].Time >= start
	})

	var duration float64
	for _, s := range spectra[idx:] {
		if bandEnergy(s.Bins, r.LowHz, r.HighHz) < d.SustainThreshold {
			break
		}
		duration = s.Time - start
	}
	return duration
}

// bandEnergy sums bins between round(lowHz/width) and round(highHz/width),
// clamped to valid indices.
func bandEnergy(bins []float64, lowHz, highHz float64) float64 {
	if len(bins) == 0 {
		return 0
	}
	low := int(math.Round(lowHz / constants.HoldBinWidthHz))
	high := int(math.Round(highHz / constants.HoldBinWidthHz))
	if low < 0 {
		low = 0
	}
	if high > len(bins)-1 {
		high = len(bins) - 1
	}

	var sum float64
	for k := low; k <= high; k++ {
		sum += bins[k]
	}
	return sum
}

// MergeNearby combines adjacent same-lane notes whose gap (end of one to
// start of the next) is at most gapThreshold, extending the earlier note
// over the later one. Notes are time-sorted first.
func (d Detector) MergeNearby(notes []model.Note, gapThreshold float64) []model.Note {
	if len(notes) < 2 {
		return notes
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})

	merged := make([]model.Note, 0, len(notes))
	current := notes[0]
	for _, n := range notes[1:] {
		gap := n.Time - (current.Time + current.Duration)
		if gap <= gapThreshold && n.Lane == current.Lane {
			current.Duration = n.Time + n.Duration - current.Time
		} else {
			merged = append(merged, current)
			current = n
		}
	}
	return append(merged, current)
}
