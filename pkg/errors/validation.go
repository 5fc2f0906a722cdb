package errors

import (
	"strings"
	"unicode"
)

const (
	maxNameLength = 200
	maxKeyLength  = 256
)

// ValidateName validates a member's display name.
// Empty names are allowed; the diagram shows them as "Unnamed".
func ValidateName(field, name string) error {
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", field, maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidateKey validates a storage key. Keys end up in file names, redis keys
// and document ids, so they are restricted to a conservative character set.
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidKey, "storage key cannot be empty")
	}
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidKey, "storage key too long (max %d characters)", maxKeyLength)
	}
	if strings.Contains(key, "..") {
		return New(ErrCodeInvalidKey, "storage key contains invalid characters: %q", "..")
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return New(ErrCodeInvalidKey, "storage key contains invalid character %q", r)
		}
	}
	return nil
}
