// Package main provides the SafeLand API server and its command line tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "safeland",
	Short: "SafeLand flood and landslide risk API",
	Long:  "SafeLand looks up flood and landslide risk for a location, combines it with live weather and asks an LLM for explanations, packing advice and answers.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
