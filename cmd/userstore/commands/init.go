package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"userstore/internal/store"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create an empty users file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store.NewUserFileStore(cfg.DataPath, cfg.StoreOptions())
			created, err := s.Init()
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", s.Path())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", s.Path())
			return nil
		},
	}
}
