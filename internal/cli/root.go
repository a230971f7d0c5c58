// Package cli implements the signctl command tree.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mlehotskylf-org/signkit/internal/config"
	"github.com/mlehotskylf-org/signkit/internal/security"
)

const version = "1.0.0"

// ErrInvalid is returned by verify when the signed string is rejected.
var ErrInvalid = errors.New("invalid")

// App carries the collaborators the commands call into.
type App struct {
	// Random is the source for secret, rand and uuid output.
	Random *security.Random

	// LoadConfig resolves the signing secret when --secret is not given.
	LoadConfig func() (config.Config, error)

	secret         string
	secretEncoding string
}

// NewApp returns an App reading randomness from crypto/rand and
// configuration from the environment.
func NewApp() *App {
	return &App{
		Random:     security.NewRandom(nil),
		LoadConfig: config.FromEnv,
	}
}

// Command builds the root command. Output goes to out.
func (a *App) Command(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "signctl",
		Short:         "Sign, verify and generate secure random values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&a.secret, "secret", "", "Signing secret (or set SIGNING_SECRET)")
	rootCmd.PersistentFlags().StringVar(&a.secretEncoding, "secret-encoding", config.SecretEncodingRaw, "Encoding of --secret: raw, hex, base64")

	rootCmd.AddCommand(a.secretCmd())
	rootCmd.AddCommand(a.signCmd())
	rootCmd.AddCommand(a.verifyCmd())
	rootCmd.AddCommand(a.randCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

// Execute runs the command tree with args and returns the process exit code.
func (a *App) Execute(args []string, out, errOut io.Writer) int {
	cmd := a.Command(out, errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, ErrInvalid) {
			fmt.Fprintln(errOut, "invalid")
			return 1
		}
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 2
	}
	return 0
}

// signer builds a Signer from --secret or the environment.
func (a *App) signer() (*security.Signer, error) {
	if a.secret != "" {
		secret, err := config.DecodeSecret(a.secret, a.secretEncoding)
		if err != nil {
			return nil, err
		}
		return security.NewSigner(secret)
	}

	load := a.LoadConfig
	if load == nil {
		load = config.FromEnv
	}
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if len(cfg.SigningSecret) == 0 {
		return nil, errors.New("--secret is required (or set SIGNING_SECRET)")
	}
	return cfg.NewSigner()
}

func (a *App) random() *security.Random {
	if a.Random == nil {
		a.Random = security.NewRandom(nil)
	}
	return a.Random
}

// versionCmd prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "signctl version %s\n", version)
		},
	}
}
