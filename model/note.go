package model

// Note is one playable event moving through the pipeline. Stages mutate it
// in place: the quantizer snaps Time, the lane assigner sets Lane, the hold
// detector sets Duration.
type Note struct {
	Time     float64 // seconds from song start
	Lane     int     // [0, numLanes)
	Duration float64 // 0 for a tap, >0 for a hold
}

// Spectrum is one time-indexed slice of banded magnitudes, as produced by
// spectral.Rebin. Bin k covers [k*width, (k+1)*width) Hz.
type Spectrum struct {
	Time float64
	Bins []float64
}

// FrequencyBand names an instrument's frequency range.
type FrequencyBand struct {
	Name   string
	LowHz  float64
	HighHz float64
}
