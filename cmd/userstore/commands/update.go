package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <json> | update <id> key=value...",
		Short: "Merge fields into the user with the given id",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseUserArgs(args[1:])
			if err != nil {
				return err
			}
			merged, err := users().Update(cmd.Context(), args[0], patch)
			if err != nil {
				return fmt.Errorf("updating user %q: %w", args[0], err)
			}
			b, err := json.MarshalIndent(merged, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
