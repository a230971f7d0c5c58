package cli

import (
	"encoding/base64"
	"fmt"

	"github.com/spf13/cobra"
)

// signCmd prints the signed string for a value.
func (a *App) signCmd() *cobra.Command {
	var (
		signatureOnly bool
		fromBase64    bool
	)
	cmd := &cobra.Command{
		Use:   "sign <value>",
		Short: "Sign a value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := []byte(args[0])
			if fromBase64 {
				decoded, err := base64.StdEncoding.DecodeString(args[0])
				if err != nil {
					return fmt.Errorf("value is not valid base64: %w", err)
				}
				value = decoded
			}

			signer, err := a.signer()
			if err != nil {
				return err
			}

			var result string
			if signatureOnly {
				result, err = signer.Signature(value)
			} else {
				result, err = signer.SignedString(value)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&signatureOnly, "signature-only", false, "Print only the hex signature")
	cmd.Flags().BoolVar(&fromBase64, "base64", false, "Treat <value> as base64-encoded bytes")
	return cmd
}

// verifyCmd prints the value carried by a valid signed string.
func (a *App) verifyCmd() *cobra.Command {
	var toBase64 bool
	cmd := &cobra.Command{
		Use:   "verify <signed>",
		Short: "Verify a signed string and print its value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signer, err := a.signer()
			if err != nil {
				return err
			}
			value, ok, err := signer.Value(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return ErrInvalid
			}

			out := cmd.OutOrStdout()
			if toBase64 {
				fmt.Fprintln(out, base64.StdEncoding.EncodeToString(value))
			} else {
				fmt.Fprintln(out, string(value))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&toBase64, "base64", false, "Print the value base64-encoded")
	return cmd
}
