// Package cryptoalg defines the capabilities of the signing engine: hash
// engines, prime generation, the RSA trapdoor, PKCS#1 v1.5 padding and the
// signature orchestration composed from them.
package cryptoalg
