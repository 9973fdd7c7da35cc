// Package charter composes the pipeline stages into chart generation
// runs: band filter, onset detection, quantization, lane assignment, hold
// detection, difficulty shaping, assembly.
package charter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/notefall/charter/audio"
	"github.com/notefall/charter/chart"
	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/difficulty"
	"github.com/notefall/charter/filterband"
	"github.com/notefall/charter/holds"
	"github.com/notefall/charter/lanes"
	"github.com/notefall/charter/model"
	"github.com/notefall/charter/onset"
	"github.com/notefall/charter/quantize"
	"github.com/notefall/charter/spectral"
)

// Instruments every chart set covers by default.
var Instruments = []string{"vocals", "bass", "drums", "lead"}

// DefaultConfig returns the baseline pipeline configuration.
func DefaultConfig() model.Config {
	return model.Config{
		GridDivision:     constants.DefaultGridDivision,
		SustainThreshold: constants.DefaultSustainThreshold,
		MinHoldDuration:  constants.DefaultMinHoldDuration,
		HoldGap:          constants.DefaultHoldGap,
		LaneStrategy:     "sequential",
		OnsetStrategy:    "energy",
	}
}

// Generator runs the pipeline. Construct one per configuration; it holds
// no per-run state, so concurrent generations may share it.
type Generator struct {
	cfg          model.Config
	laneStrategy lanes.Strategy
	detector     onset.Detector
	log          *zap.SugaredLogger
}

// NewGenerator validates the configuration up front; an invalid config is
// rejected whole, never partially applied.
func NewGenerator(cfg model.Config, log *zap.SugaredLogger) (*Generator, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if cfg.BPM < 0 {
		return nil, fmt.Errorf("%w: bpm override %g must be positive", model.ErrInvalidConfig, cfg.BPM)
	}
	if cfg.GridDivision <= 0 {
		return nil, fmt.Errorf("%w: grid division must be at least 1", model.ErrInvalidConfig)
	}
	if cfg.SustainThreshold < 0 {
		return nil, fmt.Errorf("%w: sustain threshold must not be negative", model.ErrInvalidConfig)
	}
	if cfg.MinHoldDuration < 0 || cfg.HoldGap < 0 {
		return nil, fmt.Errorf("%w: hold durations must not be negative", model.ErrInvalidConfig)
	}

	laneStrategy, err := lanes.ParseStrategy(cfg.LaneStrategy)
	if err != nil {
		return nil, err
	}
	detector, err := onset.ForStrategy(cfg.OnsetStrategy)
	if err != nil {
		return nil, err
	}

	return &Generator{
		cfg:          cfg,
		laneStrategy: laneStrategy,
		detector:     detector,
		log:          log,
	}, nil
}

// GenerateAll produces one chart per difficulty for a single instrument:
// band-filter the mono mix, detect onsets and tempo, then shape, quantize,
// assign, and extend per level.
func (g *Generator) GenerateAll(buf audio.Buffer, songID, instrument string) ([]chart.Chart, error) {
	mono := buf.Mono()
	band := filterband.ForInstrument(instrument)

	g.log.Infow("filtering to instrument band",
		"instrument", instrument, "low_hz", band.LowHz, "high_hz", band.HighHz)
	filtered := filterband.Bandpass(mono, buf.SampleRate, band)

	detection := g.detector.Detect(filtered, buf.SampleRate)
	g.log.Infow("onset detection done",
		"instrument", instrument, "onsets", len(detection.Onsets), "bpm", detection.BPM)

	sp := spectral.Compute(filtered, buf.SampleRate)
	return g.chartsFromDetection(sp, detection, songID, instrument, buf.Duration()), nil
}

// chartsFromDetection builds every difficulty from one detection pass.
// The spectrogram is shared read-only across the difficulties.
func (g *Generator) chartsFromDetection(sp *spectral.Spectrogram, detection onset.Detection, songID, instrument string, songDuration float64) []chart.Chart {
	bpm := detection.BPM
	if g.cfg.BPM > 0 {
		bpm = g.cfg.BPM
	}
	banded := sp.Rebin(constants.HoldBinWidthHz)

	charts := make([]chart.Chart, 0, len(difficulty.Levels()))
	for _, level := range difficulty.Levels() {
		charts = append(charts, g.buildChart(sp, banded, detection, bpm, songID, instrument, level, songDuration))
	}
	return charts
}

func (g *Generator) buildChart(
	sp *spectral.Spectrogram,
	banded []model.Spectrum,
	detection onset.Detection,
	bpm float64,
	songID, instrument string,
	level difficulty.Level,
	songDuration float64,
) chart.Chart {
	onsets := difficulty.Shape(detection.Onsets, detection.Envelope, level)

	notes := make([]model.Note, len(onsets))
	for i, t := range onsets {
		notes[i] = model.Note{Time: t}
	}

	quantizer := quantize.Quantizer{BPM: bpm, GridDivision: g.cfg.GridDivision}
	notes = quantizer.QuantizeNotes(notes)

	if len(notes) == 0 && g.cfg.FillEmpty {
		notes = beatAlignedNotes(bpm, songDuration)
		g.log.Debugw("empty chart filled with beat-aligned notes",
			"instrument", instrument, "difficulty", level, "notes", len(notes))
	}

	assigner := lanes.Assigner{
		Strategy: g.laneStrategy,
		NumLanes: level.Lanes(),
		Seed:     g.cfg.Seed,
	}
	notes = assigner.Assign(notes, sp)

	detector := holds.Detector{
		SustainThreshold: g.cfg.SustainThreshold,
		MinHoldDuration:  g.cfg.MinHoldDuration,
	}
	notes = detector.DetectHolds(notes, banded, holds.DefaultLaneRanges())
	notes = detector.MergeNearby(notes, g.cfg.HoldGap)

	return chart.Assemble(songID, instrument, level, bpm, notes)
}

// beatAlignedNotes keeps a chart playable when detection finds nothing:
// one note per beat for the length of the song, cycling lane 0-3.
func beatAlignedNotes(bpm, songDuration float64) []model.Note {
	if bpm <= 0 {
		bpm = constants.DefaultBPM
	}
	interval := 60.0 / bpm

	var notes []model.Note
	for t := 0.0; t < songDuration; t += interval {
		notes = append(notes, model.Note{Time: t})
	}
	return notes
}
