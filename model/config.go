package model

// Config is the full configuration surface of the pipeline, resolved once
// by the caller and passed to charter.NewGenerator. Start from
// charter.DefaultConfig for sane values; validation rejects the rest.
type Config struct {
	BPM              float64 // 0 = auto-detect; negative is invalid
	GridDivision     int     // subdivisions per beat, 4 = sixteenth grid
	SustainThreshold float64 // band energy needed to extend a hold
	MinHoldDuration  float64 // seconds; shorter sustains stay taps
	HoldGap          float64 // max gap merged between same-lane notes
	LaneStrategy     string  // sequential | frequency | random
	OnsetStrategy    string  // energy | flux
	Seed             uint64  // random lane strategy seed
	MultiBand        bool    // one spectrogram pass shared across instruments
	FillEmpty        bool    // emit beat-aligned notes when a chart comes out empty
}
