// Package password wraps bcrypt behind a hash/verify pair. bcrypt embeds a
// per-hash random salt, so equal passwords never share a digest.
package password

import "golang.org/x/crypto/bcrypt"

// Hash returns a salted one-way digest of the plaintext.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plain matches the digest. A mismatch is a negative
// result, not an error.
func Verify(digest, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
