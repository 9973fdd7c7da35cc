package constants

// Analysis frame parameters. The 2048/512 size/hop pair (75% overlap) is
// load-bearing: smaller hops blur onset timing, larger ones lose sub-beat
// precision at 60-240 BPM.
const (
	FFTSize = 2048
	HopSize = 512
)

// Tempo estimation bounds.
const (
	DefaultBPM = 120.0
	MinBPM     = 60.0
	MaxBPM     = 240.0

	// Autocorrelation tempo search range (flux strategy).
	MinAutocorrBPM = 40.0
	MaxAutocorrBPM = 200.0
)

// Note timing tolerances, all in seconds.
const (
	DedupeEpsilon     = 0.010 // two onsets closer than this are one note
	ExpertGap         = 0.5   // gaps longer than this get a midpoint note
	ExpertDedupe      = 0.050
	MinExportDuration = 0.001 // durations below this serialize as taps
)

// Pipeline defaults, overridable through model.Config.
const (
	DefaultGridDivision     = 4
	DefaultSustainThreshold = 0.5
	DefaultMinHoldDuration  = 0.25
	DefaultHoldGap          = 0.2
	DefaultFluxDelta        = 0.15
)

// Frequency cutoffs for the frequency-based lane strategy.
const (
	DefaultLaneLowHz  = 100.0
	DefaultLaneMidHz  = 500.0
	DefaultLaneHighHz = 2000.0
)

// Hold detection reads spectra re-binned to this band width so that
// Hz/100 bin indexing lines up with real frequencies.
const HoldBinWidthHz = 100.0
