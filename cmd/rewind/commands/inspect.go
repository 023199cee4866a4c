package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rewind/internal/adapters/detector"
	"go.trai.ch/rewind/internal/app"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <scenario>",
		Short: "Print the recorded timeline of a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			interactive, _ := cmd.Flags().GetBool("interactive")
			color, _ := cmd.Flags().GetString("color")

			return c.app.Inspect(cmd.Context(), args[0], app.InspectOptions{
				JSON:        asJSON,
				Interactive: interactive,
				Color:       detector.ColorMode(color),
			})
		},
	}
	cmd.Flags().Bool("json", false, "Print the timeline as JSON")
	cmd.Flags().BoolP("interactive", "i", false, "Browse the timeline frame by frame")
	cmd.MarkFlagsMutuallyExclusive("json", "interactive")
	cmd.Flags().String("color", string(detector.ColorAuto), "Color output: auto, always, or never")
	return cmd
}
