package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID builds a prefixed entity identifier, e.g. "ord-1f9e2ab4c7d0".
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + raw[:12]
}
