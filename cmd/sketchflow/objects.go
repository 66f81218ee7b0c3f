package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

func newObjectsCmd() *cobra.Command {
	var canvasID string
	cmd := &cobra.Command{
		Use:   "objects",
		Short: "List the objects on a canvas",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := buildRuntime(false)
			if err != nil {
				return err
			}
			defer rt.Close()

			if canvasID == "" {
				canvasID = rt.cfg.Host.DefaultCanvas
			}
			objects, err := rt.service.List(cmd.Context(), canvasID)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(objects)
		},
	}
	cmd.Flags().StringVar(&canvasID, "canvas", "", "target canvas identifier")
	return cmd
}
