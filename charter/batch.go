package charter

import (
	"fmt"
	"sync"

	"github.com/notefall/charter/audio"
	"github.com/notefall/charter/chart"
	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/onset"
	"github.com/notefall/charter/spectral"
	"github.com/notefall/charter/util"
)

// BatchResult is one instrument's outcome. A failed instrument carries its
// error without blocking the rest of the batch.
type BatchResult struct {
	Instrument string
	Charts     []chart.Chart
	Err        error
}

// GenerateBatch runs one full generation per instrument concurrently. The
// decoded buffer is shared read-only; in multi-band mode so is a single
// spectrogram, replacing the per-instrument band-filter pass.
func (g *Generator) GenerateBatch(buf audio.Buffer, songID string, instruments []string) []BatchResult {
	var (
		shared     *spectral.Spectrogram
		detections map[string]onset.Detection
	)
	if g.cfg.MultiBand {
		mono := buf.Mono()
		shared = spectral.Compute(mono, buf.SampleRate)
		detections = onset.DetectBands(shared, constants.DefaultFluxDelta)
		g.log.Infow("multi-band spectrogram computed",
			"frames", shared.NumFrames(), "bands", util.SortedKeys(detections))
	}

	results := make([]BatchResult, len(instruments))
	var wg sync.WaitGroup
	for i, instrument := range instruments {
		wg.Add(1)
		go func(i int, instrument string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = BatchResult{
						Instrument: instrument,
						Err:        fmt.Errorf("generation panicked: %v", r),
					}
				}
			}()

			result := BatchResult{Instrument: instrument}
			if g.cfg.MultiBand {
				detection, ok := detections[instrument]
				if !ok {
					// unknown instruments ride the full-spectrum flux
					detection = detections["drums"]
				}
				result.Charts = g.chartsFromDetection(shared, detection, songID, instrument, buf.Duration())
			} else {
				result.Charts, result.Err = g.GenerateAll(buf, songID, instrument)
			}
			results[i] = result
		}(i, instrument)
	}
	wg.Wait()
	return results
}
