package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove the user with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := users().Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("deleting user %q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User deleted successfully")
			return nil
		},
	}
}
