package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/reqsync/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status [src_files...]",
		Short: "Show the last sync and whether the requirement files changed since",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputMode, _ := cmd.Flags().GetString("output")
			return c.app.Status(cmd.Context(), args, app.StatusOptions{OutputMode: outputMode})
		},
	}
	cmd.Flags().StringP("output", "o", "auto", "Output format: auto, pretty, plain or json")
	return cmd
}
