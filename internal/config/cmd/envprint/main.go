// Command envprint prints the effective configuration with secrets redacted.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/mlehotskylf-org/signkit/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Use the Redacted() method to get safe config
	redacted := cfg.Redacted()

	// Print as pretty JSON
	output, err := json.MarshalIndent(redacted, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(output))

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config is not valid: %v\n", err)
		os.Exit(1)
	}
}
