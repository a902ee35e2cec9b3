package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func (c *CLI) newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <name> [file]",
		Short: "Import a blueprint document into the repository",
		Long: `Read a canonical blueprint document from the given file, or from
standard input when no file is given, and commit it under the given name.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, _ := cmd.Flags().GetString("message")

			var (
				doc []byte
				err error
			)
			if len(args) == 2 {
				doc, err = os.ReadFile(args[1])
			} else {
				doc, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			commitID, err := c.app.Import(cmd.Context(), args[0], doc, message)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), commitID)

			return nil
		},
	}

	cmd.Flags().StringP("message", "m", "", "Commit message for the imported blueprint")

	return cmd
}
