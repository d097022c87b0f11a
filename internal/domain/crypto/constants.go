package crypto

// HashAlgorithmMD5 identifies the MD5 hash engine
const HashAlgorithmMD5 = "md5"

// HashAlgorithmSHA256 identifies the SHA-256 hash engine
const HashAlgorithmSHA256 = "sha256"

// DefaultHashAlgorithm is used for signing when nothing else is configured
const DefaultHashAlgorithm = HashAlgorithmSHA256

// MD5DigestSize is the MD5 digest length in bytes
const MD5DigestSize = 16

// SHA256DigestSize is the SHA-256 digest length in bytes
const SHA256DigestSize = 32

// AlgorithmRSA represents the RSA signature algorithm
const AlgorithmRSA = "RSA"

// SignatureSchemePKCS1v15 names the RSASSA-PKCS1-v1_5 signature scheme
const SignatureSchemePKCS1v15 = "RSASSA-PKCS1-V1_5"

// KeyTypePrivate represents a private key
const KeyTypePrivate = "private"

// KeyTypePublic represents a public key
const KeyTypePublic = "public"

// DefaultPublicExponent is the preferred RSA public exponent (F4)
const DefaultPublicExponent = 65537

// MinKeySize is the smallest modulus size in bits accepted for key generation
const MinKeySize = 16

// MaxKeySize is the largest modulus size in bits accepted for key generation and parsing
const MaxKeySize = 16384

// maxSmallExponentBits lets exponents such as 65537 exceed the width of a toy modulus
const maxSmallExponentBits = 32

// DefaultKeySize is the modulus size in bits used when none is requested
const DefaultKeySize = 1024

// RSA key sizes offered to callers
const (
	RSAKeySize512  = 512
	RSAKeySize1024 = 1024
	RSAKeySize2048 = 2048
	RSAKeySize3072 = 3072
	RSAKeySize4096 = 4096
)
