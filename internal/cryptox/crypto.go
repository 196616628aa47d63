// Package cryptox derives and verifies password credentials.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Changing any of them invalidates every stored hash.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// HashPassword derives the credential hash of password with salt (argon2id).
func HashPassword(password, salt string) []byte {
	return argon2.IDKey([]byte(password), []byte(salt), argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword recomputes the hash and compares it in constant time.
func VerifyPassword(password, salt string, hash []byte) bool {
	return subtle.ConstantTimeCompare(HashPassword(password, salt), hash) == 1
}
