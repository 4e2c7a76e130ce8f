package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	IdentifierPrefix  = "NGO"
	identifierLength  = 8
	identifierCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewOrganizationIdentifier returns "NGO" followed by eight random
// uppercase letters or digits.
func NewOrganizationIdentifier() (string, error) {
	var b strings.Builder
	b.Grow(len(IdentifierPrefix) + identifierLength)
	b.WriteString(IdentifierPrefix)

	max := big.NewInt(int64(len(identifierCharset)))
	for i := 0; i < identifierLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate identifier: %w", err)
		}
		b.WriteByte(identifierCharset[n.Int64()])
	}
	return b.String(), nil
}

// IsOrganizationIdentifier reports whether s has the issued identifier shape.
func IsOrganizationIdentifier(s string) bool {
	if len(s) != len(IdentifierPrefix)+identifierLength || !strings.HasPrefix(s, IdentifierPrefix) {
		return false
	}
	for _, c := range s[len(IdentifierPrefix):] {
		if !strings.ContainsRune(identifierCharset, c) {
			return false
		}
	}
	return true
}
