package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newDestroyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "destroy <name>",
		Short: "Remove a blueprint and its history from the repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Destroy(cmd.Context(), args[0])
		},
	}
}
