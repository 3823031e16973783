package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hushbox/hushbox"
)

var (
	views      int
	noViews    bool
	days       int
	expires    string
	noExpiry   bool
	passphrase string
)

func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&views, "views", 0, "number of allowed views (1-9, default 1)")
	cmd.Flags().BoolVar(&noViews, "no-view-limit", false, "allow unlimited views")
	cmd.Flags().IntVar(&days, "days", 0, "lifetime in days (1, 3, 7, 14 or 30, default 7)")
	cmd.Flags().StringVar(&expires, "expires", "", "absolute expiry (RFC 3339 or YYYY-MM-DDTHH:MM)")
	cmd.Flags().BoolVar(&noExpiry, "no-expiry", false, "keep until viewed, subject to server retention")
	cmd.Flags().StringVarP(&passphrase, "passphrase", "p", "", "use this passphrase instead of generating one")
}

// buildPolicyInput translates flag values to raw policy inputs; the SDK's
// resolver owns sanitization and precedence.
func buildPolicyInput() hushbox.PolicyInput {
	input := hushbox.PolicyInput{
		DisableViews:  noViews,
		DisableExpiry: noExpiry,
		ExpiresAt:     expires,
	}
	if views > 0 {
		input.ViewCount = strconv.Itoa(views)
	}
	if days > 0 {
		input.LifetimeDays = strconv.Itoa(days)
	}
	return input
}

func policyOptions() []hushbox.CreateOption {
	opts := []hushbox.CreateOption{hushbox.WithPolicyInput(buildPolicyInput())}
	if passphrase != "" {
		opts = append(opts, hushbox.WithPassphrase(passphrase))
	}
	return opts
}

func printStored(stored *hushbox.StoredSecret) {
	fmt.Println(color.GreenString("✓") + " Secret stored")
	fmt.Printf("  Link:       %s\n", stored.Link(serverURL))
	fmt.Printf("  Passphrase: %s\n", color.YellowString(stored.Passphrase))

	if stored.Policy.MaxViews > 0 {
		fmt.Printf("  Views:      %d\n", stored.Policy.MaxViews)
	} else {
		fmt.Println("  Views:      unlimited")
	}
	if stored.Policy.ExpiresAt > 0 {
		fmt.Printf("  Expires:    %s\n", time.Unix(stored.Policy.ExpiresAt, 0).Format(time.RFC3339))
	}
	fmt.Println(color.CyanString("→") + " Share the passphrase through a different channel than the link")
}

// create: read the secret from the argument or stdin, encrypt, store.
func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [text]",
		Short: "Encrypt and store a text secret",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return err
				}
				text = string(data)
			}

			stored, err := client.CreateText(cmd.Context(), text, policyOptions()...)
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
