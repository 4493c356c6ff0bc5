// Package scannerkey generates and validates the API keys handed to business
// scanner devices.
package scannerkey

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// Scope represents a scanner key permission scope
type Scope string

// Available scopes
const (
	// ScopeScan allows verification previews
	ScopeScan Scope = "SCAN"
	// ScopeConfirm allows committing a redemption
	ScopeConfirm Scope = "CONFIRM"
	// ScopeAdmin allows key management for the business
	ScopeAdmin Scope = "ADMIN"
)

// DefaultPrefix is the key prefix for scanner devices
const DefaultPrefix = "slsk"

// Generate generates a new scanner key with the given prefix
func Generate(prefix string) (string, error) {
	// Generate 20 random bytes
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	// Encode to base32 and remove padding
	encoded := base32.StdEncoding.EncodeToString(bytes)
	encoded = strings.ReplaceAll(encoded, "=", "")

	// Format as prefix_encoded
	return prefix + "_" + encoded, nil
}

// ValidateScope checks if a scope is valid
func ValidateScope(scope Scope) bool {
	switch scope {
	case ScopeScan, ScopeConfirm, ScopeAdmin:
		return true
	default:
		return false
	}
}
