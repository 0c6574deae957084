// Package store persists the user collection as a single JSON document on
// disk.
//
// UserFileStore is a read-modify-write coordinator: every operation loads
// the whole document, mutates it in memory and, for mutations, writes the
// whole document back through a temp file and rename. Mutations are
// serialised per store instance unless Options.SerializeWrites is off.
//
// When a passphrase is configured the document is sealed at rest in a
// versioned scrypt + ChaCha20-Poly1305 envelope; callers still see
// plaintext JSON.
package store
