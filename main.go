// Command mindful-labyrinth serves the labyrinth minigame and prints mazes.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mindful-labyrinth",
	Short:         "Mindful labyrinth minigame service",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
