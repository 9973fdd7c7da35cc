package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/notefall/charter/model"
)

// The pipeline treats decoding as an external collaborator; this reader
// exists so the CLI can run end-to-end. It handles canonical RIFF/WAVE
// with 16-bit PCM or 32-bit IEEE float frames and nothing else.

const (
	wavFormatPCM   = 1
	wavFormatFloat = 3
)

// ReadFile decodes a .wav file into a normalized Buffer. Unknown
// extensions surface ErrUnsupportedFormat before any bytes are read.
func ReadFile(path string) (Buffer, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".wav" {
		return Buffer{}, fmt.Errorf("%w: %q", model.ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("%w: %v", model.ErrDecodeFailure, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses a RIFF/WAVE stream.
func Decode(r io.Reader) (Buffer, error) {
	var header [12]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Buffer{}, fmt.Errorf("%w: short riff header: %v", model.ErrDecodeFailure, err)
	}
	if !bytes.Equal(header[0:4], []byte("RIFF")) || !bytes.Equal(header[8:12], []byte("WAVE")) {
		return Buffer{}, fmt.Errorf("%w: not a riff wave stream", model.ErrUnsupportedFormat)
	}

	var (
		format        uint16
		channels      uint16
		sampleRate    uint32
		bitsPerSample uint16
		haveFmt       bool
	)

	for {
		var chunk [8]byte
		if _, err := io.ReadFull(r, chunk[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return Buffer{}, fmt.Errorf("%w: no data chunk", model.ErrDecodeFailure)
			}
			return Buffer{}, fmt.Errorf("%w: %v", model.ErrDecodeFailure, err)
		}
		id := string(chunk[0:4])
		size := binary.LittleEndian.Uint32(chunk[4:8])

		switch id {
		case "fmt ":
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return Buffer{}, fmt.Errorf("%w: truncated fmt chunk: %v", model.ErrDecodeFailure, err)
			}
			if size < 16 {
				return Buffer{}, fmt.Errorf("%w: fmt chunk too small", model.ErrDecodeFailure)
			}
			format = binary.LittleEndian.Uint16(body[0:2])
			channels = binary.LittleEndian.Uint16(body[2:4])
			sampleRate = binary.LittleEndian.Uint32(body[4:8])
			bitsPerSample = binary.LittleEndian.Uint16(body[14:16])
			haveFmt = true
		case "data":
			if !haveFmt {
				return Buffer{}, fmt.Errorf("%w: data chunk before fmt", model.ErrDecodeFailure)
			}
			body := make([]byte, size)
			if _, err := io.ReadFull(r, body); err != nil {
				return Buffer{}, fmt.Errorf("%w: truncated data chunk: %v", model.ErrDecodeFailure, err)
			}
			samples, err := decodeSamples(body, format, bitsPerSample)
			if err != nil {
				return Buffer{}, err
			}
			if channels == 0 || sampleRate == 0 {
				return Buffer{}, fmt.Errorf("%w: fmt chunk has zero rate or channels", model.ErrDecodeFailure)
			}
			return Buffer{
				Samples:    samples,
				SampleRate: int(sampleRate),
				Channels:   int(channels),
			}, nil
		default:
			// skip unknown chunks (LIST, fact, cue, ...)
			if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
				return Buffer{}, fmt.Errorf("%w: truncated %s chunk: %v", model.ErrDecodeFailure, id, err)
			}
		}
	}
}

func decodeSamples(body []byte, format, bitsPerSample uint16) ([]float64, error) {
	switch {
	case format == wavFormatPCM && bitsPerSample == 16:
		n := len(body) / 2
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			v := int16(binary.LittleEndian.Uint16(body[i*2 : i*2+2]))
			out[i] = float64(v) / 32768.0
		}
		return out, nil
	case format == wavFormatFloat && bitsPerSample == 32:
		n := len(body) / 4
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			bits := binary.LittleEndian.Uint32(body[i*4 : i*4+4])
			out[i] = float64(math.Float32frombits(bits))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: wav format %d with %d bits/sample",
			model.ErrUnsupportedFormat, format, bitsPerSample)
	}
}
