package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the canonical document of a blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commitID, _ := cmd.Flags().GetString("commit")

			doc, err := c.app.Show(cmd.Context(), args[0], commitID)
			if err != nil {
				return err
			}

			_, _ = cmd.OutOrStdout().Write(doc)

			return nil
		},
	}

	cmd.Flags().StringP("commit", "c", "", "Show the blueprint at a specific commit instead of the branch head")

	return cmd
}
