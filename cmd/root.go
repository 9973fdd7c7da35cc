package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "charter",
	Short: "Procedural note chart generator",
	Long:  `Turns audio into timed, laned note charts at multiple difficulties.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
