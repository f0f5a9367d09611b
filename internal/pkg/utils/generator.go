package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateBookingID encodes year, zero-indexed month, and a zero-padded
// display sequence, e.g. "2026-7-0042". The zero-indexed month is a wire
// format inherited by every downstream invoice consumer.
func GenerateBookingID(now time.Time, sequence int64) string {
	return fmt.Sprintf("%d-%d-%04d", now.Year(), int(now.Month())-1, sequence)
}

func GenerateDocumentName(prefix string) string {
	return fmt.Sprintf("%s-%s.pdf", prefix, uuid.NewString())
}
