package cryptoalg

// Hasher is a one-shot hash engine. Compute is safe for concurrent use.
type Hasher interface {
	// Algorithm returns the engine name, e.g. "sha256".
	Algorithm() string

	// Size returns the digest length in bytes.
	Size() int

	// Compute returns the digest of message.
	Compute(message []byte) []byte
}
