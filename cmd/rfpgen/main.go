// Package main provides the rfpgen CLI for authoring CO₂ capture licensor RFPs.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rfpgen",
	Short: "CO₂ capture licensor RFP generator",
	Long: "rfpgen authors Requests for Proposal for CO₂ capture process licensors: " +
		"it renders print and word-processor views, exports PDF, drafts narrative sections with Gemini, and serves an editing API.",
	SilenceUsage: true,
}

var (
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
