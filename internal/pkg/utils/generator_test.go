package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingID(t *testing.T) {
	t.Run("month is zero indexed", func(t *testing.T) {
		now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, "2026-7-0042", GenerateBookingID(now, 42))
	})

	t.Run("january becomes zero", func(t *testing.T) {
		now := time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2027-0-0001", GenerateBookingID(now, 1))
	})

	t.Run("sequence wider than four digits is kept", func(t *testing.T) {
		now := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "2026-11-12345", GenerateBookingID(now, 12345))
	})
}

func TestGenerateDocumentName(t *testing.T) {
	name := GenerateDocumentName("invoice-2026-7-0001")
	assert.True(t, strings.HasPrefix(name, "invoice-2026-7-0001-"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.NotEqual(t, name, GenerateDocumentName("invoice-2026-7-0001"))
}
