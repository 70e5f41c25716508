package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// SecretVerifier checks a presented secret against a stored hash.
// The gateway uses it to gate token issuance for the operator principal.
type SecretVerifier interface {
	// Compare checks the plaintext secret against the stored hash.
	// Returns nil when they match.
	Compare(hash, secret string) error
}

// BcryptVerifier implements SecretVerifier using bcrypt.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a bcrypt-backed SecretVerifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Compare implements SecretVerifier.Compare
func (v *BcryptVerifier) Compare(hash, secret string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return ErrBadOperatorSecret
	}
	return nil
}

// HashSecret generates a bcrypt hash for the given secret. Used by
// operational tooling to produce the operator_secret_hash config value.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
