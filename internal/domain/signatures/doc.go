// Package signatures defines document signing and verification as exposed to
// the HTTP and CLI surfaces, in terms of the textual key and signature encodings.
package signatures
