package quickteller

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	referenceAlphabet = "0123456789abcdef"

	// DefaultReferenceLength is the number of random characters appended to the
	// request prefix for every bill payment advice.
	DefaultReferenceLength = 8
)

// GenerateReference returns a random lowercase hex string of the given length
// drawn from a cryptographic source.
func GenerateReference(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid reference length %d", length)
	}

	ref, err := gonanoid.Generate(referenceAlphabet, length)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference: %w", err)
	}
	return ref, nil
}

// NewRequestReference joins the caller-assigned prefix with a fresh random suffix.
func NewRequestReference(prefix string, length int) (string, error) {
	suffix, err := GenerateReference(length)
	if err != nil {
		return "", err
	}
	return prefix + suffix, nil
}
