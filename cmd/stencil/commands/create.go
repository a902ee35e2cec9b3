package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Capture the current system state as a new blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, _ := cmd.Flags().GetString("message")

			commitID, err := c.app.Create(cmd.Context(), args[0], message)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), commitID)

			return nil
		},
	}

	cmd.Flags().StringP("message", "m", "", "Commit message for the new blueprint")

	return cmd
}
