// Package crypto holds the small hashing helpers used outside the store's
// at-rest envelope.
package crypto
