package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notefall/charter/chart"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <chart.json>",
	Short: "Inspects a generated chart",
	Long:  `Inspects a generated chart`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	c, err := chart.ReadFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("song_id: %v\n", c.SongID)
	fmt.Printf("instrument: %v\n", c.Instrument)
	fmt.Printf("difficulty: %v\n", c.Difficulty)
	fmt.Printf("columns: %v\n", c.Columns)
	fmt.Printf("bpm: %v\n", c.BPM)
	fmt.Printf("generated_at: %v\n", c.GeneratedAt)
	fmt.Printf("notes: %v\n", len(c.Notes))

	holds := 0
	for _, n := range c.Notes {
		if n.Duration > 0 {
			holds++
		}
	}
	fmt.Printf("holds: %v\n", holds)

	if len(c.Notes) > 0 {
		last := c.Notes[len(c.Notes)-1]
		fmt.Printf("first note: %.3fs lane %d\n", c.Notes[0].Time, c.Notes[0].Col)
		fmt.Printf("last note: %.3fs lane %d\n", last.Time, last.Col)
	}
	return nil
}
