package commands

import (
	"fmt"
	"os"

	"github.com/MGTheTrain/docsign/internal/app"
	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
	"github.com/MGTheTrain/docsign/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/docsign/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// SignatureCommandHandler encapsulates logic for signing and verifying files via CLI.
type SignatureCommandHandler struct {
	rsaProcessor cryptoalg.RSAProcessor
	logger       logger.Logger
}

// NewSignatureCommandHandler initializes a new SignatureCommandHandler.
func NewSignatureCommandHandler() (*SignatureCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := newRSAProcessor(loggerInstance)
	if err != nil {
		return nil, err
	}

	return &SignatureCommandHandler{
		rsaProcessor: rsaProcessor,
		logger:       loggerInstance,
	}, nil
}

func (commandHandler *SignatureCommandHandler) processor(cmd *cobra.Command) (cryptoalg.SignatureProcessor, error) {
	hashAlgorithm, err := cmd.Flags().GetString("hash")
	if err != nil {
		return nil, fmt.Errorf("invalid hash flag: %w", err)
	}
	return cryptography.NewSignatureProcessor(hashAlgorithm, commandHandler.rsaProcessor, commandHandler.logger)
}

// SignCmd signs a file and prints or saves the encoded signature
func (commandHandler *SignatureCommandHandler) SignCmd(cmd *cobra.Command, _ []string) error {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	outputFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return fmt.Errorf("invalid output-file flag: %w", err)
	}
	privateKeyPath, err := cmd.Flags().GetString("private-key")
	if err != nil {
		return fmt.Errorf("invalid private-key flag: %w", err)
	}

	processor, err := commandHandler.processor(cmd)
	if err != nil {
		return err
	}

	keyString, err := readTextFile(privateKeyPath)
	if err != nil {
		return err
	}
	privateKey, err := crypto.ParsePrivateKey(keyString)
	if err != nil {
		return fmt.Errorf("failed to parse private key: %w", err)
	}

	data, err := readFile(inputFilePath)
	if err != nil {
		return err
	}

	signature, err := processor.Sign(data, privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign %s: %w", inputFilePath, err)
	}
	encoded := crypto.EncodeSignature(signature)

	if outputFilePath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), encoded)
		return nil
	}

	if err := os.WriteFile(outputFilePath, []byte(encoded), 0600); err != nil {
		return fmt.Errorf("failed to write signature: %w", err)
	}

	commandHandler.logger.Info("Signature saved at ", outputFilePath)
	return nil
}

// VerifyCmd verifies a signature file against a document and a public key
func (commandHandler *SignatureCommandHandler) VerifyCmd(cmd *cobra.Command, _ []string) error {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	signatureFilePath, err := cmd.Flags().GetString("signature-file")
	if err != nil {
		return fmt.Errorf("invalid signature-file flag: %w", err)
	}
	publicKeyPath, err := cmd.Flags().GetString("public-key")
	if err != nil {
		return fmt.Errorf("invalid public-key flag: %w", err)
	}

	processor, err := commandHandler.processor(cmd)
	if err != nil {
		return err
	}

	keyString, err := readTextFile(publicKeyPath)
	if err != nil {
		return err
	}
	publicKey, err := crypto.ParsePublicKey(keyString)
	if err != nil {
		return fmt.Errorf("failed to parse public key: %w", err)
	}

	data, err := readFile(inputFilePath)
	if err != nil {
		return err
	}

	encoded, err := readTextFile(signatureFilePath)
	if err != nil {
		return err
	}
	signature, err := crypto.DecodeSignature(encoded)
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}

	valid, err := processor.Verify(data, signature, publicKey)
	if err != nil {
		return fmt.Errorf("failed to verify %s: %w", inputFilePath, err)
	}

	if valid {
		fmt.Fprintln(cmd.OutOrStdout(), app.MessageSignatureValid)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), app.MessageSignatureInvalid)
	}
	return nil
}

// InitSignatureCommands registers sign and verify commands
func InitSignatureCommands(rootCmd *cobra.Command) error {
	handler, err := NewSignatureCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create signature command handler: %w", err)
	}

	var signCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign a file with an RSA private key",
		RunE:  handler.SignCmd,
	}
	signCmd.Flags().StringP("input-file", "", "", "Path to file which needs to be signed")
	signCmd.Flags().StringP("private-key", "", "", "Path to file holding the <d>:<n> private key")
	signCmd.Flags().StringP("output-file", "", "", "Path to signature output file (prints to stdout when empty)")
	signCmd.Flags().StringP("hash", "", crypto.DefaultHashAlgorithm, "Hash algorithm (md5 or sha256)")
	if err := markRequired(signCmd, "input-file", "private-key"); err != nil {
		return err
	}
	rootCmd.AddCommand(signCmd)

	var verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify the signature of a file with an RSA public key",
		RunE:  handler.VerifyCmd,
	}
	verifyCmd.Flags().StringP("input-file", "", "", "Path to file which needs to be verified")
	verifyCmd.Flags().StringP("signature-file", "", "", "Path to signature input file")
	verifyCmd.Flags().StringP("public-key", "", "", "Path to file holding the <e>:<n> public key")
	verifyCmd.Flags().StringP("hash", "", crypto.DefaultHashAlgorithm, "Hash algorithm (md5 or sha256)")
	if err := markRequired(verifyCmd, "input-file", "signature-file", "public-key"); err != nil {
		return err
	}
	rootCmd.AddCommand(verifyCmd)

	return nil
}
