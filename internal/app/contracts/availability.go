package contracts

import (
	"context"
	"time"
)

type AvailabilityUsecase interface {
	// EnsureWithinSession verifies that [start, start+duration) falls inside
	// one of the doctor's sessions at the establishment on start's weekday.
	EnsureWithinSession(ctx context.Context, doctorID, establishmentID string, start time.Time, durationMinutes int) error
}
