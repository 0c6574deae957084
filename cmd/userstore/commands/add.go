package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <json> | add key=value...",
		Short: "Create a user (id, username and email are required)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseUserArgs(args)
			if err != nil {
				return err
			}
			if err := users().Create(cmd.Context(), u); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User added successfully")
			return nil
		},
	}
}
