package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rewind/internal/adapters/detector"
	"go.trai.ch/rewind/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Simulate scenarios and reconcile their corrections",
		Long: "Simulate the scenarios in the given files or directories. " +
			"Without arguments the rewind.yaml file in the current directory is used.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			record, _ := cmd.Flags().GetBool("record")
			watch, _ := cmd.Flags().GetBool("watch")
			trace, _ := cmd.Flags().GetBool("trace")
			color, _ := cmd.Flags().GetString("color")
			history, _ := cmd.Flags().GetInt("history")
			jobs, _ := cmd.Flags().GetInt("jobs")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				Record:      record,
				Watch:       watch,
				Trace:       trace,
				Color:       detector.ColorMode(color),
				HistorySize: history,
				Jobs:        jobs,
			})
		},
	}
	cmd.Flags().BoolP("record", "r", false, "Store each scenario's timeline for later inspection")
	cmd.Flags().BoolP("watch", "w", false, "Rerun scenarios when their files change")
	cmd.Flags().Bool("trace", false, "Log a trace span for every scenario and rollback")
	cmd.Flags().String("color", string(detector.ColorAuto), "Color output: auto, always, or never")
	cmd.Flags().Int("history", 0, "Frames kept for rollbacks (default 128)")
	cmd.Flags().IntP("jobs", "j", 0, "Scenarios simulated at once (default one per CPU)")
	return cmd
}
