// Package main is the entry point for the signctl command line tool.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/mlehotskylf-org/signkit/internal/cli"
)

func main() {
	// Load .env if present; existing variables win
	_ = godotenv.Load()

	os.Exit(cli.NewApp().Execute(os.Args[1:], os.Stdout, os.Stderr))
}
