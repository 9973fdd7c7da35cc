package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notefall/charter/chart"
	"github.com/notefall/charter/preview"
)

var previewOut string

func init() {
	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "output .mid path (default: chart path with .mid)")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview <chart.json>",
	Short: "Renders a chart to a MIDI file",
	Long:  `Renders a chart to a MIDI file so it can be auditioned in a sequencer.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderPreview(args[0])
	},
}

func renderPreview(path string) error {
	c, err := chart.ReadFile(path)
	if err != nil {
		return err
	}

	out := previewOut
	if out == "" {
		out = strings.TrimSuffix(path, ".json") + ".mid"
	}

	if err := preview.WriteFile(c, out); err != nil {
		return err
	}
	fmt.Printf("wrote %v (%v notes)\n", out, len(c.Notes))
	return nil
}
