package utility

import (
	"github.com/google/uuid"
	"strings"
)

// NormalizedText trims the text and lowers its case for comparison
func NormalizedText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func NewUUID() string {
	return uuid.New().String()
}
