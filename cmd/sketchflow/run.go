package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sketchflow/sketchflow/internal/plan"
)

func newRunCmd() *cobra.Command {
	var canvasID string
	cmd := &cobra.Command{
		Use:   "run <instruction>",
		Short: "Run one instruction against a canvas",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if canvasID == "" {
				canvasID = rt.cfg.Host.DefaultCanvas
			}
			instruction := strings.Join(args, " ")

			outcome, err := rt.agent.Handle(cmd.Context(), canvasID, instruction)
			if err != nil {
				var stepErr *plan.StepError
				if errors.As(err, &stepErr) && outcome != nil {
					fmt.Fprintf(os.Stderr, "Step %d failed: %v\n", stepErr.Ordinal, stepErr.Err)
					fmt.Fprintf(os.Stderr, "%d of %d steps applied before the failure.\n",
						len(outcome.Results), len(outcome.Plan.Steps))
				}
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(outcome)
		},
	}
	cmd.Flags().StringVar(&canvasID, "canvas", "", "target canvas identifier")
	return cmd
}
