//go:build unit
// +build unit

package app

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/infrastructure/persistence"
	"github.com/MGTheTrain/docsign/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingRSAProcessor never finishes key generation before ctx is done.
type blockingRSAProcessor struct{}

func (blockingRSAProcessor) GenerateKeyPair(ctx context.Context, _ int, _ bool) (*crypto.KeyPair, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingRSAProcessor) Encrypt(x *big.Int, _ *crypto.PublicKey) (*big.Int, error) {
	return x, nil
}

func (blockingRSAProcessor) Decrypt(x *big.Int, _ *crypto.PrivateKey) (*big.Int, error) {
	return x, nil
}

func TestKeyDirectoryService_Register(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmSHA256)
	ctx := context.Background()

	entry, err := services.KeyDirectoryService.Register(ctx, " Alice ", "Finance", " 65537:3233\n")
	require.NoError(t, err)
	assert.Len(t, entry.ID, keys.KeyIDLength)
	assert.Equal(t, "Alice", entry.Name)
	assert.Equal(t, "65537:3233", entry.PublicKey)

	fetched, err := services.KeyDirectoryService.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Signer(), fetched.Signer())

	entries, err := services.KeyDirectoryService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, services.KeyDirectoryService.DeleteByID(ctx, entry.ID))
	_, err = services.KeyDirectoryService.GetByID(ctx, entry.ID)
	assert.ErrorIs(t, err, keys.ErrKeyNotFound)
	assert.ErrorIs(t, services.KeyDirectoryService.DeleteByID(ctx, entry.ID), keys.ErrKeyNotFound)
}

func TestKeyDirectoryService_RegisterInvalid(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmSHA256)
	ctx := context.Background()

	_, err := services.KeyDirectoryService.Register(ctx, "Alice", "Finance", "not-a-key")
	assert.ErrorIs(t, err, crypto.ErrInvalidKeyFormat)

	_, err = services.KeyDirectoryService.Register(ctx, "", "Finance", "65537:3233")
	assert.ErrorIs(t, err, keys.ErrInvalidKeyEntry)
}

func TestKeyGenerationService_Generate(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmSHA256)
	ctx := context.Background()

	generated, err := services.KeyGenerationService.Generate(ctx, "Bob", "Legal", crypto.RSAKeySize512)
	require.NoError(t, err)
	require.NotNil(t, generated.PrivateKey)

	entry, err := services.KeyDirectoryService.GetByID(ctx, generated.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob (Legal)", entry.Signer())

	public, err := entry.ParsedPublicKey()
	require.NoError(t, err)
	assert.Equal(t, 0, public.N.Cmp(generated.PrivateKey.N))

	// the published key verifies what the returned private key signs
	signature, err := services.SignatureService.Sign(ctx, []byte("contract"), generated.PrivateKey.String())
	require.NoError(t, err)
	result, err := services.SignatureService.Verify(ctx, []byte("contract"), signature, &generated.Entry.ID, nil)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestKeyGenerationService_InvalidInput(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmSHA256)
	ctx := context.Background()

	_, err := services.KeyGenerationService.Generate(ctx, "Bob", "Legal", 1000)
	assert.ErrorIs(t, err, crypto.ErrInvalidKeySize)

	_, err = services.KeyGenerationService.Generate(ctx, " ", "Legal", crypto.RSAKeySize512)
	assert.ErrorIs(t, err, keys.ErrInvalidKeyEntry)
}

func TestKeyGenerationService_Timeout(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	directory, err := persistence.NewCacheKeyDirectory(logger)
	require.NoError(t, err)
	directoryService, err := NewKeyDirectoryService(directory, logger)
	require.NoError(t, err)

	service, err := NewKeyGenerationService(blockingRSAProcessor{}, directoryService, 20*time.Millisecond, nil, logger)
	require.NoError(t, err)

	_, err = service.Generate(context.Background(), "Bob", "Legal", crypto.RSAKeySize1024)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	entries, err := directoryService.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewKeyServices_NilDependencies(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	_, err := NewKeyDirectoryService(nil, logger)
	assert.Error(t, err)

	_, err = NewKeyGenerationService(nil, nil, time.Second, nil, logger)
	assert.Error(t, err)
}
