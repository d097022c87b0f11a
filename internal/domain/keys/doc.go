// Package keys models the public-key directory: named, department-scoped
// public keys that verifiers look up by identifier.
package keys
