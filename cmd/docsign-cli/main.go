// Package main is the entry point for the docsign-cli application.
// It registers the key generation, signing, verification and hashing commands
// on the root command and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "github.com/MGTheTrain/docsign/cmd/docsign-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := newRootCmd()

	if err := commands.InitCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docsign-cli",
		Short: "RSA document signing CLI tool",
		Long: `docsign-cli generates RSA key pairs, signs documents with PKCS#1 v1.5
and verifies signatures. Keys use the "<exponent>:<modulus>" decimal format and
signatures are base64 encoded decimal integers.

Keys are printed to stdout and never written by the tool.`,
		SilenceUsage: true,
	}
}

// init sets up any necessary initialization before main runs.
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
