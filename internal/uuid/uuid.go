// Package uuid generates the random identifiers used for upload sessions and
// stored file names.
package uuid

import (
	"strings"

	guuid "github.com/google/uuid"
)

// NewSessionID returns the identifier of a temporary upload session.
func NewSessionID() string {
	return guuid.NewString()
}

// NewToken returns a 32 character hex token used as a stored file name.
func NewToken() string {
	return strings.ReplaceAll(guuid.NewString(), "-", "")
}

// IsSessionID reports whether s is a well formed upload session identifier.
func IsSessionID(s string) bool {
	_, err := guuid.Parse(s)
	return err == nil && len(s) == 36
}
