package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlehotskylf-org/signkit/internal/config"
	"github.com/mlehotskylf-org/signkit/internal/security"
)

// secretCmd generates a signing secret in .env form.
func (a *App) secretCmd() *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Generate a signing secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < security.MinSecretLength {
				return fmt.Errorf("--bytes must be at least %d (got %d)", security.MinSecretLength, n)
			}
			token, err := a.random().Token(n)
			if err != nil {
				return fmt.Errorf("generate secret: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "SIGNING_SECRET=%s\n", token)
			fmt.Fprintf(out, "SIGNING_SECRET_ENCODING=%s\n", config.SecretEncodingHex)
			return nil
		},
	}
	cmd.Flags().IntVar(&n, "bytes", 32, "Number of random bytes")
	return cmd
}
