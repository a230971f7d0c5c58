package cli

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// randCmd groups the randomness subcommands.
func (a *App) randCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rand",
		Short: "Generate secure random values",
	}
	cmd.AddCommand(a.randBytesCmd())
	cmd.AddCommand(a.randIntCmd())
	cmd.AddCommand(a.randUUIDCmd())
	return cmd
}

func (a *App) randBytesCmd() *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "bytes <n>",
		Short: "Print n random bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("n must be an integer (got %q)", args[0])
			}

			var encode func([]byte) string
			switch encoding {
			case "hex":
				encode = hex.EncodeToString
			case "base64":
				encode = base64.StdEncoding.EncodeToString
			default:
				return fmt.Errorf("--encoding must be 'hex' or 'base64' (got %q)", encoding)
			}

			b, err := a.random().Bytes(n)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encode(b))
			return nil
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", "hex", "Output encoding: hex, base64")
	return cmd
}

func (a *App) randIntCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "int <min> <max>",
		Short: "Print a uniform integer in [min, max]",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lo, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("min must be a 64-bit integer (got %q)", args[0])
			}
			hi, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("max must be a 64-bit integer (got %q)", args[1])
			}

			v, err := a.random().Int(lo, hi)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func (a *App) randUUIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uuid",
		Short: "Print a random version 4 UUID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.random().UUID()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id.String())
			return nil
		},
	}
}
