package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when no account matches so a miss costs the
// same as a wrong secret.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("impactecho-no-such-account"), bcrypt.DefaultCost)

// HashSecret hashes a plaintext secret using bcrypt.
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret must not be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifySecret compares a bcrypt hash with the supplied plaintext secret.
func VerifySecret(hash, secret string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// BurnVerification spends one bcrypt comparison and always fails.
func BurnVerification(secret string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(secret))
}
