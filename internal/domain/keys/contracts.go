package keys

import (
	"context"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
)

// KeyDirectory stores directory entries.
type KeyDirectory interface {
	Create(ctx context.Context, entry *KeyEntry) error
	// List returns all entries ordered by creation time, then ID.
	List(ctx context.Context) ([]*KeyEntry, error)
	GetByID(ctx context.Context, keyID string) (*KeyEntry, error)
	DeleteByID(ctx context.Context, keyID string) error
}

// KeyDirectoryService defines methods for registering and managing public keys in the directory.
type KeyDirectoryService interface {
	// Register validates publicKey ("e:n") and stores it under a fresh identifier.
	Register(ctx context.Context, name, department, publicKey string) (*KeyEntry, error)

	// List retrieves all directory entries.
	List(ctx context.Context) ([]*KeyEntry, error)

	// GetByID retrieves a directory entry by its identifier.
	// It returns ErrKeyNotFound when the entry does not exist.
	GetByID(ctx context.Context, keyID string) (*KeyEntry, error)

	// DeleteByID removes a directory entry by its identifier.
	DeleteByID(ctx context.Context, keyID string) error
}

// GeneratedKey is the outcome of a key generation request. The private key
// is returned to the caller only and never stored.
type GeneratedKey struct {
	Entry      *KeyEntry
	PrivateKey *crypto.PrivateKey
}

// KeyGenerationService generates RSA key pairs and publishes their public half.
type KeyGenerationService interface {
	// Generate creates a key pair of keySize bits, registers the public key
	// under name and department and returns the entry with the private key.
	Generate(ctx context.Context, name, department string, keySize int) (*GeneratedKey, error)
}
