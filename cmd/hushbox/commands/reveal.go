package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hushbox/hushbox"
)

var outPath string

// reveal: fetch, decrypt and print or save a secret.
func revealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal <secret-id>",
		Short: "Retrieve and decrypt a secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if passphrase == "" {
				return fmt.Errorf("passphrase required (-p)")
			}

			revealed, err := client.Reveal(cmd.Context(), args[0], passphrase)
			if err != nil {
				switch {
				case errors.Is(err, hushbox.ErrNotFound):
					return fmt.Errorf("secret not found; it may have expired or been viewed already")
				case errors.Is(err, hushbox.ErrInvalidPassphrase):
					return fmt.Errorf("passphrase does not match; no view was consumed")
				default:
					return err
				}
			}

			if revealed.IsFile {
				target := outPath
				if target == "" {
					target = revealed.Filename
				}
				if err := os.WriteFile(target, revealed.Data, 0o600); err != nil {
					return err
				}
				fmt.Println(color.GreenString("✓") + " File saved to " + target)
				return nil
			}

			if outPath != "" {
				return os.WriteFile(outPath, revealed.Data, 0o600)
			}
			fmt.Println(revealed.Text())
			return nil
		},
	}
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "passphrase for the secret")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write the payload to this path")
	return cmd
}
