package chart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/notefall/charter/constants"
	"github.com/notefall/charter/model"
)

type Format int

const (
	FormatJSON Format = iota
	FormatChart
)

func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return FormatJSON, nil
	case "chart":
		return FormatChart, nil
	default:
		return FormatJSON, fmt.Errorf("%w: unknown chart format %q", model.ErrInvalidConfig, name)
	}
}

func (f Format) Extension() string {
	if f == FormatChart {
		return "chart"
	}
	return "json"
}

// EncodeJSON renders the persistence-collaborator JSON form.
func EncodeJSON(c Chart) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// DecodeJSON parses a chart previously written by EncodeJSON. Notes with
// no duration field come back as taps.
func DecodeJSON(data []byte) (Chart, error) {
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return Chart{}, fmt.Errorf("parsing chart json: %w", err)
	}
	return c, nil
}

// EncodeChart renders the textual format: a [SONG] block, a [NOTES] block,
// then one "type|lane|time" line per note (type 1 tap, 2 hold), with a
// hold's duration on a trailing "2|lane|duration" line.
func EncodeChart(c Chart) []byte {
	var b strings.Builder

	b.WriteString("[SONG]\n")
	fmt.Fprintf(&b, "  Title = %q\n", c.SongID)
	b.WriteString("  Artist = \"\"\n")
	fmt.Fprintf(&b, "  BPM = %g\n", c.BPM)
	b.WriteString("  Gap = 0\n\n")

	b.WriteString("[NOTES]\n")
	fmt.Fprintf(&b, "  Instrument = %s\n", c.Instrument)
	fmt.Fprintf(&b, "  Difficulty = %s\n", c.Difficulty)
	fmt.Fprintf(&b, "  Columns = %d\n", c.Columns)
	fmt.Fprintf(&b, "  Notes = %d\n", len(c.Notes))
	b.WriteString(":\n")

	for _, n := range c.Notes {
		noteType := 1
		if n.Duration >= constants.MinExportDuration {
			noteType = 2
		}
		fmt.Fprintf(&b, "  %d|%d|%.3f\n", noteType, n.Col, n.Time)
		if noteType == 2 {
			fmt.Fprintf(&b, "  2|%d|%.3f\n", n.Col, n.Duration)
		}
	}
	b.WriteString(";\n")

	return []byte(b.String())
}

// Filename is songid_instrument_difficulty.ext, lowercased apart from the
// song id.
func Filename(c Chart, format Format) string {
	return fmt.Sprintf("%s_%s_%s.%s",
		c.SongID,
		strings.ToLower(c.Instrument),
		strings.ToLower(c.Difficulty),
		format.Extension())
}

// WriteFile encodes the chart and writes it under dir.
func WriteFile(c Chart, dir string, format Format) (string, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatChart:
		data = EncodeChart(c)
	default:
		data, err = EncodeJSON(c)
		if err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, Filename(c, format))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing chart: %w", err)
	}
	return path, nil
}

// ReadFile parses a JSON chart from disk (the inspect and preview
// commands use this).
func ReadFile(path string) (Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("reading chart: %w", err)
	}
	return DecodeJSON(data)
}
