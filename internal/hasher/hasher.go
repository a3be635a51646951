// Package hasher isolates password hashing behind a small interface so the
// algorithm can be swapped without touching business rules.
package hasher

// PasswordHasher produces and checks one-way salted password hashes.
type PasswordHasher interface {
	// Hash derives a self-describing hash string (algorithm, work factor,
	// salt, digest) from a plaintext password. Fails on empty input.
	Hash(password string) (string, error)

	// Verify reports whether plaintext matches the stored hash. Empty or
	// malformed input yields false, never an error.
	Verify(password, hash string) bool
}
