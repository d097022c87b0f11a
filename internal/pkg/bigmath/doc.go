// Package bigmath implements the number-theoretic helpers RSA needs over
// arbitrary-precision integers: greatest common divisor, the extended
// Euclidean algorithm, modular inverse and modular exponentiation.
//
// Only the basic arithmetic of math/big (add, multiply, divide) is used; the
// algorithms themselves are implemented here so that no value is ever
// assumed to fit a fixed machine word.
package bigmath
