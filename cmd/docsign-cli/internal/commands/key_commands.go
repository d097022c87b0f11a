package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
	"github.com/MGTheTrain/docsign/internal/pkg/config"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// KeyCommandHandler encapsulates logic for generating RSA key pairs via CLI.
type KeyCommandHandler struct {
	rsaProcessor cryptoalg.RSAProcessor
	logger       logger.Logger
}

// NewKeyCommandHandler initializes a new KeyCommandHandler with logging and an RSA processor.
func NewKeyCommandHandler() (*KeyCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := newRSAProcessor(loggerInstance)
	if err != nil {
		return nil, err
	}

	return &KeyCommandHandler{
		rsaProcessor: rsaProcessor,
		logger:       loggerInstance,
	}, nil
}

// GenerateKeysCmd generates an RSA key pair and prints both halves
func (commandHandler *KeyCommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		return fmt.Errorf("invalid key-size flag: %w", err)
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return fmt.Errorf("invalid timeout flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("invalid verbose flag: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	rsaProcessor := commandHandler.rsaProcessor
	if verbose {
		if rsaProcessor, err = newRSAProcessor(verboseLogger(cmd)); err != nil {
			return err
		}
	}

	keyPair, err := rsaProcessor.GenerateKeyPair(ctx, keySize, verbose)
	if err != nil {
		return fmt.Errorf("failed to generate keys: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "public: %s\n", keyPair.Public.String())
	fmt.Fprintf(out, "private: %s\n", keyPair.Private.String())
	return nil
}

// verboseLogger writes debug records to the command's stderr; the process-wide
// logger stays at info level.
func verboseLogger(cmd *cobra.Command) logger.Logger {
	return logger.With(logger.NewWriterLogger(config.LogLevelDebug, cmd.ErrOrStderr()), "service", logger.ServiceName)
}

// InitKeyCommands registers key-related commands
func InitKeyCommands(rootCmd *cobra.Command) error {
	handler, err := NewKeyCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create key command handler: %w", err)
	}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate an RSA key pair",
		RunE:  handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().IntP("key-size", "", crypto.DefaultKeySize, "RSA modulus size in bits")
	generateKeysCmd.Flags().DurationP("timeout", "", 2*time.Minute, "Abort key generation after this duration (0 disables)")
	generateKeysCmd.Flags().BoolP("verbose", "v", false, "Log intermediate values at debug level")
	rootCmd.AddCommand(generateKeysCmd)

	return nil
}
