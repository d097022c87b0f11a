package signatures

import (
	"context"
)

// UploadedKeySigner labels a signature verified against a caller supplied key.
const UploadedKeySigner = "Uploaded Key"

// VerificationResult is the outcome of a verification request.
type VerificationResult struct {
	Valid   bool
	Message string
	// Signer is set only for valid signatures.
	Signer *string
}

// SignatureService signs, verifies and hashes documents.
type SignatureService interface {
	// Sign returns the encoded signature of message for the "d:n" private key.
	Sign(ctx context.Context, message []byte, privateKey string) (string, error)

	// Verify checks an encoded signature. The directory entry named by keyID
	// takes precedence over publicKey; with neither it fails with crypto.ErrMissingKey.
	Verify(ctx context.Context, message []byte, encodedSignature string, keyID, publicKey *string) (*VerificationResult, error)

	// Hash returns the hex digest of message. An empty algorithm selects the service default.
	Hash(ctx context.Context, message []byte, algorithm string) (string, error)
}
