// Package service provides password hashing and session token services for staff
// authentication.
package service

// PasswordService hashes and verifies staff passwords.
type PasswordService interface {
	// HashPassword hashes a plain text password with Argon2id in PHC format.
	HashPassword(plainPassword string) (string, error)

	// ComparePassword reports whether plainPassword matches hashedPassword.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// TokenService generates session bearer tokens and the SHA-256 hashes stored for them.
type TokenService interface {
	// GenerateToken returns a new random plain token and its hash. The plain token
	// is returned to the client once and never stored.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token using SHA-256 and returns it hex-encoded.
	HashToken(plainToken string) string
}
