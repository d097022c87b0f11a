package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
	"github.com/MGTheTrain/docsign/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/docsign/internal/pkg/config"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

func newRSAProcessor(logger logger.Logger) (cryptoalg.RSAProcessor, error) {
	primes, err := cryptography.NewPrimeGenerator(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create prime generator: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(primes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}
	return rsaProcessor, nil
}

// readTextFile reads a key or signature file and strips surrounding whitespace
func readTextFile(path string) (string, error) {
	data, err := readFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("file path must not be empty")
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func markRequired(cmd *cobra.Command, flags ...string) error {
	for _, flag := range flags {
		if err := cmd.MarkFlagRequired(flag); err != nil {
			return fmt.Errorf("failed to mark flag %s required: %w", flag, err)
		}
	}
	return nil
}

// InitCommands registers all docsign commands
func InitCommands(rootCmd *cobra.Command) error {
	if err := InitKeyCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize key commands: %w", err)
	}

	if err := InitSignatureCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize signature commands: %w", err)
	}

	if err := InitHashCommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize hash commands: %w", err)
	}

	return nil
}
