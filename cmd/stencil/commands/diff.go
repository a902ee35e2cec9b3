package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <derived> <base> <result>",
		Short: "Subtract one blueprint from another and store the result",
		Long: `Subtract the base blueprint from the derived blueprint and commit
the remainder under the result name. The result contains everything the
derived blueprint has that the base does not.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, _ := cmd.Flags().GetString("message")

			commitID, err := c.app.Diff(cmd.Context(), args[0], args[1], args[2], message)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), commitID)

			return nil
		},
	}

	cmd.Flags().StringP("message", "m", "", "Commit message for the result blueprint")

	return cmd
}
