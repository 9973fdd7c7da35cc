package audio

// Buffer holds decoded PCM, normalized to [-1, 1]. The pipeline only ever
// reads it; callers may share one Buffer across concurrent generations.
type Buffer struct {
	Samples    []float64 // interleaved when Channels > 1
	SampleRate int
	Channels   int
}

// Mono downmixes by per-sample channel averaging. Mono input is copied so
// the result is safe to hand to stages that would otherwise alias the
// caller's samples.
func (b Buffer) Mono() []float64 {
	if b.Channels <= 1 {
		out := make([]float64, len(b.Samples))
		copy(out, b.Samples)
		return out
	}

	frames := len(b.Samples) / b.Channels
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < b.Channels; c++ {
			sum += b.Samples[i*b.Channels+c]
		}
		out[i] = sum / float64(b.Channels)
	}
	return out
}

// Duration returns the buffer length in seconds.
func (b Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	channels := b.Channels
	if channels < 1 {
		channels = 1
	}
	return float64(len(b.Samples)) / (float64(b.SampleRate) * float64(channels))
}
