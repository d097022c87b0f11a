// Package crypto defines the key material, digest and signature encodings and
// the error taxonomy shared by the RSA signing engine and its collaborators.
//
// Keys are exchanged as "<exponent>:<modulus>" in decimal, digests as
// lower-case hex and signatures as the base64 encoding of their decimal form.
package crypto
