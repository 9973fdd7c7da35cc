// Package difficulty derives per-level onset sets by thinning or
// densifying a detected onset sequence.
package difficulty

import (
	"math"
	"sort"

	"github.com/notefall/charter/constants"
)

type Level string

const (
	Easy   Level = "Easy"
	Normal Level = "Normal"
	Hard   Level = "Hard"
	Expert Level = "Expert"
)

// Levels returns every difficulty in generation order.
func Levels() []Level {
	return []Level{Easy, Normal, Hard, Expert}
}

// Lanes is the column count played at this level.
func (l Level) Lanes() int {
	if l == Expert {
		return 5
	}
	return 4
}

// Shape returns the level's onset subset. Easy keeps ~60%, Normal ~80%,
// Hard everything; Expert keeps everything and fills gaps longer than half
// a second with a midpoint onset. The strengths envelope is accepted for
// strategies that weight onsets by energy; the current shapes are purely
// positional.
func Shape(onsets, strengths []float64, level Level) []float64 {
	switch level {
	case Easy:
		return thin(onsets, 0.6)
	case Normal:
		return thin(onsets, 0.8)
	case Expert:
		return densify(onsets)
	default:
		out := make([]float64, len(onsets))
		copy(out, onsets)
		return out
	}
}

// thin keeps ceil(n*ratio) onsets at even index spacing, always including
// the first.
func thin(onsets []float64, ratio float64) []float64 {
	if len(onsets) == 0 {
		return nil
	}
	keepCount := int(math.Ceil(float64(len(onsets)) * ratio))
	spacing := float64(len(onsets)) / float64(keepCount)

	var out []float64
	next := 0.0
	for i, t := range onsets {
		if float64(i) >= next {
			out = append(out, t)
			next += spacing
		}
	}
	return out
}

// densify inserts a midpoint into any gap over the expert threshold, then
// re-sorts and drops near-duplicates within 50 ms.
func densify(onsets []float64) []float64 {
	out := make([]float64, len(onsets))
	copy(out, onsets)

	for i := 0; i+1 < len(onsets); i++ {
		if onsets[i+1]-onsets[i] > constants.ExpertGap {
			out = append(out, (onsets[i]+onsets[i+1])/2)
		}
	}

	sort.Float64s(out)

	var deduped []float64
	for _, t := range out {
		if len(deduped) == 0 || t-deduped[len(deduped)-1] >= constants.ExpertDedupe {
			deduped = append(deduped, t)
		}
	}
	return deduped
}
