// Package main provides the CLI entry point for the SketchFlow canvas
// agent.
//
// Start the server:
//
//	sketchflow serve --config sketchflow.yaml
//
// Run a single instruction against a canvas:
//
//	sketchflow run "draw a 3x3 grid of blue circles"
//
// Environment variables:
//
//   - SKETCHFLOW_CONFIG: path to the configuration file
//   - ANTHROPIC_API_KEY: Anthropic API key for Claude models
//   - OPENAI_API_KEY: OpenAI API key for GPT models
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build information, populated by ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "sketchflow",
		Short: "LLM-planned canvas mutation engine",
		Long:  "SketchFlow turns natural-language instructions into validated, ordered canvas mutations.",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", os.Getenv("SKETCHFLOW_CONFIG"), "path to configuration file")

	root.AddCommand(
		newServeCmd(),
		newRunCmd(),
		newObjectsCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sketchflow %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
