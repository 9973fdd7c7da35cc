package quantize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notefall/charter/model"
)

func TestSnap(t *testing.T) {
	q := Quantizer{BPM: 120, GridDivision: 4} // 62.5ms grid

	assert := assert.New(t)
	assert.InDelta(0.0625, q.Snap(0.06), 1e-9)
	assert.InDelta(0.0, q.Snap(0.02), 1e-9)
	assert.InDelta(0.5, q.Snap(0.51), 1e-9)
}

func TestSnapLeavesGridTimesAlone(t *testing.T) {
	q := Quantizer{BPM: 120, GridDivision: 4}

	assert := assert.New(t)
	for _, tm := range []float64{0, 0.125, 0.25, 1.0, 2.6875} {
		assert.InDelta(tm, q.Snap(tm), 1e-9)
	}
}

func TestSnapIsIdempotent(t *testing.T) {
	q := Quantizer{BPM: 97, GridDivision: 3}

	assert := assert.New(t)
	for _, tm := range []float64{0.013, 0.2, 1.77, 12.345} {
		once := q.Snap(tm)
		assert.InDelta(once, q.Snap(once), 1e-9)
	}
}

func TestQuantizeNotes(t *testing.T) {
	q := Quantizer{BPM: 120, GridDivision: 4}
	notes := []model.Note{
		{Time: 0.5, Lane: 1},
		{Time: 0.0, Lane: 0},
		{Time: 0.505, Lane: 2}, // snaps onto 0.5, first seen wins
		{Time: 0.26, Lane: 3},
	}

	out := q.QuantizeNotes(notes)

	assert := assert.New(t)
	assert.Len(out, 3)
	assert.Equal([]model.Note{
		{Time: 0.0, Lane: 0},
		{Time: 0.25, Lane: 3},
		{Time: 0.5, Lane: 1},
	}, out)

	for i := 1; i < len(out); i++ {
		assert.Greater(out[i].Time-out[i-1].Time, 0.01)
	}
}

func TestQuantizeNotesEmpty(t *testing.T) {
	q := Quantizer{BPM: 120, GridDivision: 4}

	assert := assert.New(t)
	assert.Empty(q.QuantizeNotes(nil))
}
