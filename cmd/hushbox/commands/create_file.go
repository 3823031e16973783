package commands

import (
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// create-file: encrypt a file and its metadata, store the envelope.
func createFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-file <path>",
		Short: "Encrypt and store a file secret",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			filename := filepath.Base(args[0])
			mediaType := mime.TypeByExtension(filepath.Ext(filename))
			if mediaType == "" {
				mediaType = "application/octet-stream"
			}

			stored, err := client.CreateFile(cmd.Context(), filename, mediaType, data, policyOptions()...)
			if err != nil {
				return err
			}

			printStored(stored)
			return nil
		},
	}
	addPolicyFlags(cmd)
	return cmd
}
