package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hushbox/hushbox"
)

var (
	serverURL string
	client    *hushbox.Client
)

func Execute() error {
	root := &cobra.Command{
		Use:           "hushbox",
		Short:         "Share secrets that are encrypted before they leave your machine",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := hushbox.New(serverURL)
			if err != nil {
				return fmt.Errorf("invalid server URL: %w", err)
			}
			client = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "hushbox server base URL")

	root.AddCommand(createCmd(), createFileCmd(), revealCmd())
	return root.Execute()
}
