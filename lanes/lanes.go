// Package lanes maps notes onto playable columns.
package lanes

import (
	"fmt"
	"strings"

	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/model"
	"github.com/notefall/charter/spectral"
)

type Strategy int

const (
	Sequential Strategy = iota
	Frequency
	Random
)

// ParseStrategy maps a configuration name to a strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "", "sequential":
		return Sequential, nil
	case "frequency":
		return Frequency, nil
	case "random":
		return Random, nil
	default:
		return Sequential, fmt.Errorf("%w: unknown lane strategy %q", model.ErrInvalidConfig, name)
	}
}

// Assigner writes lane indices into notes. Cutoffs split the spectrum into
// non-overlapping low/mid/high partitions for the frequency strategy; zero
// cutoffs take the defaults.
type Assigner struct {
	Strategy Strategy
	NumLanes int
	LowHz    float64
	MidHz    float64
	HighHz   float64
	Seed     uint64 // random strategy; fix it for reproducible output
}

// Assign mutates each note's lane according to the strategy. The frequency
// strategy needs a spectrogram and falls back to sequential without one.
func (a Assigner) Assign(notes []model.Note, sp *spectral.Spectrogram) []model.Note {
	switch a.Strategy {
	case Frequency:
		if sp == nil || sp.NumFrames() == 0 {
			return a.sequential(notes)
		}
		return a.byFrequency(notes, sp)
	case Random:
		return a.random(notes)
	default:
		return a.sequential(notes)
	}
}

func (a Assigner) sequential(notes []model.Note) []model.Note {
	for i := range notes {
		notes[i].Lane = i % a.NumLanes
	}
	return notes
}

func (a Assigner) byFrequency(notes []model.Note, sp *spectral.Spectrogram) []model.Note {
	low, mid, high := a.LowHz, a.MidHz, a.HighHz
	if low == 0 && mid == 0 && high == 0 {
		low, mid, high = constants.DefaultLaneLowHz, constants.DefaultLaneMidHz, constants.DefaultLaneHighHz
	}

	for i := range notes {
		frame := sp.Frames[sp.NearestFrame(notes[i].Time)]

		var lowSum, midSum, highSum float64
		for k, mag := range frame {
			f := sp.BinFrequency(k)
			switch {
			case f < low:
				lowSum += mag
			case f < mid:
				midSum += mag
			case f < high:
				highSum += mag
			}
		}
		notes[i].Lane = a.energyLane(lowSum, midSum, highSum)
	}
	return notes
}

// energyLane picks the dominant bucket: three for four lanes, five
// half-weighted-extreme buckets for five lanes.
func (a Assigner) energyLane(low, mid, high float64) int {
	var energies []float64
	switch a.NumLanes {
	case 4:
		energies = []float64{low, mid, high}
	case 5:
		energies = []float64{low / 2, low, mid, high, high / 2}
	default:
		return 0
	}

	maxIdx := 0
	for i, e := range energies {
		if e > energies[maxIdx] {
			maxIdx = i
		}
	}
	return maxIdx % a.NumLanes
}

func (a Assigner) random(notes []model.Note) []model.Note {
	rng := lcg{state: a.Seed}
	for i := range notes {
		notes[i].Lane = int(rng.next() % uint64(a.NumLanes))
	}
	return notes
}

// lcg is the classic glibc-constant linear congruential generator; the
// high half of the state is used to avoid the weak low bits.
type lcg struct {
	state uint64
}

func (g *lcg) next() uint64 {
	g.state = g.state*1103515245 + 12345
	return g.state >> 16
}
