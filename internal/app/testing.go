//go:build unit
// +build unit

package app

import (
	"testing"
	"time"

	"github.com/MGTheTrain/docsign/internal/domain/cryptoalg"
	"github.com/MGTheTrain/docsign/internal/domain/keys"
	"github.com/MGTheTrain/docsign/internal/domain/signatures"
	"github.com/MGTheTrain/docsign/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/docsign/internal/infrastructure/metrics"
	"github.com/MGTheTrain/docsign/internal/infrastructure/persistence"
	"github.com/MGTheTrain/docsign/internal/pkg/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	KeyDirectoryService  keys.KeyDirectoryService
	KeyGenerationService keys.KeyGenerationService
	SignatureService     signatures.SignatureService

	RSAProcessor cryptoalg.RSAProcessor
	Metrics      *metrics.Metrics
}

// SetupTestServices wires the application services on top of the in-memory directory
func SetupTestServices(t *testing.T, hashAlgorithm string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)

	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)

	directory, err := persistence.NewCacheKeyDirectory(logger)
	require.NoError(t, err)

	primes, err := cryptography.NewPrimeGenerator(logger)
	require.NoError(t, err)

	rsa, err := cryptography.NewRSAProcessor(primes, logger)
	require.NoError(t, err)

	processor, err := cryptography.NewSignatureProcessor(hashAlgorithm, rsa, logger)
	require.NoError(t, err)

	directoryService, err := NewKeyDirectoryService(directory, logger)
	require.NoError(t, err)

	generationService, err := NewKeyGenerationService(rsa, directoryService, time.Minute, m, logger)
	require.NoError(t, err)

	signatureService, err := NewSignatureService(processor, []cryptoalg.Hasher{
		cryptography.NewMD5Hasher(),
		cryptography.NewSHA256Hasher(),
	}, directoryService, m, logger)
	require.NoError(t, err)

	return &TestServices{
		KeyDirectoryService:  directoryService,
		KeyGenerationService: generationService,
		SignatureService:     signatureService,
		RSAProcessor:         rsa,
		Metrics:              m,
	}
}
