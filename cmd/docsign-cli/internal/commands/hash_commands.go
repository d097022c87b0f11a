package commands

import (
	"fmt"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/infrastructure/cryptography"

	"github.com/spf13/cobra"
)

// HashCmd prints the hex digest of a file
func HashCmd(cmd *cobra.Command, _ []string) error {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	algorithm, err := cmd.Flags().GetString("algorithm")
	if err != nil {
		return fmt.Errorf("invalid algorithm flag: %w", err)
	}

	hasher, err := cryptography.NewHasher(algorithm)
	if err != nil {
		return err
	}

	data, err := readFile(inputFilePath)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), crypto.EncodeDigest(hasher.Compute(data)))
	return nil
}

// InitHashCommands registers the hash command
func InitHashCommands(rootCmd *cobra.Command) error {
	var hashCmd = &cobra.Command{
		Use:   "hash",
		Short: "Print the hex digest of a file",
		RunE:  HashCmd,
	}
	hashCmd.Flags().StringP("input-file", "", "", "Path to file which needs to be hashed")
	hashCmd.Flags().StringP("algorithm", "", crypto.DefaultHashAlgorithm, "Hash algorithm (md5 or sha256)")
	if err := markRequired(hashCmd, "input-file"); err != nil {
		return err
	}
	rootCmd.AddCommand(hashCmd)

	return nil
}
