package commands

import (
	"github.com/spf13/cobra"

	"userstore/internal/app"
)

var (
	cfg        app.Config
	dataPath   string
	passphrase string
	serverURL  string
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "userstore",
		Short:        "CRUD service over a JSON users file",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := app.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			if cmd.Flags().Changed("data") {
				cfg.DataPath = dataPath
			}
			if cmd.Flags().Changed("passphrase") {
				cfg.Passphrase = passphrase
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dataPath, "data", "", "users file (default $USERSTORE_DATA or data/users.json)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase sealing the users file at rest")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "service base URL (e.g. http://127.0.0.1:3500); local file when empty")

	root.AddCommand(serveCmd(), initCmd(), listCmd(), addCmd(), updateCmd(), deleteCmd())
	return root
}
