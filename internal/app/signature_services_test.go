//go:build unit
// +build unit

package app

import (
	"context"
	"encoding/base64"
	"math/big"
	"testing"

	"github.com/MGTheTrain/docsign/internal/domain/crypto"
	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/domain/signatures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

func setupSignedDocument(t *testing.T, services *TestServices) (*keys.GeneratedKey, []byte, string) {
	t.Helper()
	generated, err := services.KeyGenerationService.Generate(context.Background(), "Carol", "Engineering", crypto.RSAKeySize512)
	require.NoError(t, err)

	document := []byte("%PDF-1.7 quarterly report")
	signature, err := services.SignatureService.Sign(context.Background(), document, generated.PrivateKey.String())
	require.NoError(t, err)

	return generated, document, signature
}

func TestSignatureService_VerifyWithDirectoryKey(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmSHA256)
	generated, document, signature := setupSignedDocument(t, services)

	result, err := services.SignatureService.Verify(context.Background(), document, signature, &generated.Entry.ID, nil)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, MessageSignatureValid, result.Message)
	require.NotNil(t, result.Signer)
	assert.Equal(t, "Carol (Engineering)", *result.Signer)
}

func TestSignatureService_VerifyWithUploadedKey(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmSHA256)
	generated, document, signature := setupSignedDocument(t, services)

	result, err := services.SignatureService.Verify(context.Background(), document, signature, nil, &generated.Entry.PublicKey)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, signatures.UploadedKeySigner, *result.Signer)

	// an unknown key id falls back to the uploaded key
	result, err = services.SignatureService.Verify(context.Background(), document, signature, ptr("00000000"), &generated.Entry.PublicKey)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}

func TestSignatureService_VerifyTampered(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmSHA256)
	generated, document, signature := setupSignedDocument(t, services)

	tampered := append([]byte(nil), document...)
	tampered[0] ^= 0x01

	result, err := services.SignatureService.Verify(context.Background(), tampered, signature, &generated.Entry.ID, nil)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, MessageSignatureInvalid, result.Message)
	assert.Nil(t, result.Signer)
}

func TestSignatureService_VerifyErrors(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmSHA256)
	generated, document, signature := setupSignedDocument(t, services)
	ctx := context.Background()

	_, err := services.SignatureService.Verify(ctx, document, signature, nil, nil)
	assert.ErrorIs(t, err, crypto.ErrMissingKey)

	_, err = services.SignatureService.Verify(ctx, document, signature, ptr(""), ptr(""))
	assert.ErrorIs(t, err, crypto.ErrMissingKey)

	_, err = services.SignatureService.Verify(ctx, document, signature, ptr("00000000"), nil)
	assert.ErrorIs(t, err, crypto.ErrMissingKey)
	assert.NotErrorIs(t, err, keys.ErrKeyNotFound)

	_, err = services.SignatureService.Verify(ctx, document, signature, nil, ptr("garbage"))
	assert.ErrorIs(t, err, crypto.ErrInvalidKeyFormat)

	// an exponent far wider than the modulus is refused before any exponentiation
	modulus := generated.PrivateKey.N
	wideExponent := new(big.Int).Lsh(big.NewInt(1), 1<<16)
	_, err = services.SignatureService.Verify(ctx, document, signature, nil, ptr(wideExponent.String()+":"+modulus.String()))
	assert.ErrorIs(t, err, crypto.ErrInvalidKeyFormat)

	notDecimal := base64.StdEncoding.EncodeToString([]byte("abc"))
	_, err = services.SignatureService.Verify(ctx, document, notDecimal, &generated.Entry.ID, nil)
	assert.ErrorIs(t, err, crypto.ErrInvalidSignatureFormat)
}

func TestSignatureService_SignErrors(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmSHA256)
	ctx := context.Background()

	_, err := services.SignatureService.Sign(ctx, []byte("doc"), "12345")
	assert.ErrorIs(t, err, crypto.ErrInvalidKeyFormat)

	// 3233 is a 12-bit modulus, far too small for the DigestInfo
	_, err = services.SignatureService.Sign(ctx, []byte("doc"), "2753:3233")
	assert.ErrorIs(t, err, crypto.ErrKeyTooSmall)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = services.SignatureService.Sign(cancelled, []byte("doc"), "2753:3233")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSignatureService_Hash(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmSHA256)
	ctx := context.Background()

	digest, err := services.SignatureService.Hash(ctx, []byte("abc"), "")
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", digest)

	digest, err = services.SignatureService.Hash(ctx, []byte("abc"), crypto.HashAlgorithmMD5)
	require.NoError(t, err)
	assert.Equal(t, "900150983cd24fb0d6963f7d28e17f72", digest)

	_, err = services.SignatureService.Hash(ctx, []byte("abc"), "sha1")
	assert.ErrorIs(t, err, crypto.ErrUnsupportedHashAlgorithm)
}

func TestSignatureService_MD5Processor(t *testing.T) {
	services := SetupTestServices(t, crypto.HashAlgorithmMD5)
	generated, document, signature := setupSignedDocument(t, services)

	result, err := services.SignatureService.Verify(context.Background(), document, signature, &generated.Entry.ID, nil)
	require.NoError(t, err)
	assert.True(t, result.Valid)
}
