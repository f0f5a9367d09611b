package availability

import (
	"context"
	"errors"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/exceptions"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSessionRepository struct {
	sessions []models.Session
	err      error
}

func (f *fakeSessionRepository) FindByDoctorAndWeekday(ctx context.Context, doctorID, establishmentID, weekday string) ([]models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
}

func sessionWindow(startHour, startMinute, endHour, endMinute int) models.Session {
	return models.Session{
		DoctorID:        "doc-1",
		EstablishmentID: "est-1",
		Weekdays:        []string{"Monday"},
		StartTime:       time.Date(1970, 1, 1, startHour, startMinute, 0, 0, time.UTC),
		EndTime:         time.Date(1970, 1, 1, endHour, endMinute, 0, 0, time.UTC),
	}
}

func newAvailabilityUsecase(repo *fakeSessionRepository) *availabilityUsecase {
	return &availabilityUsecase{
		SessionRepository: repo,
		Log:               zap.NewNop(),
	}
}

func TestEnsureWithinSession(t *testing.T) {
	// 2026-03-02 is a Monday.
	monday := func(hour, minute int) time.Time {
		return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	}

	t.Run("start inside window is accepted", func(t *testing.T) {
		uc := newAvailabilityUsecase(&fakeSessionRepository{
			sessions: []models.Session{sessionWindow(9, 0, 17, 0)},
		})
		err := uc.EnsureWithinSession(context.Background(), "doc-1", "est-1", monday(10, 30), 30)
		assert.NoError(t, err)
	})

	t.Run("start exactly at window start is accepted", func(t *testing.T) {
		uc := newAvailabilityUsecase(&fakeSessionRepository{
			sessions: []models.Session{sessionWindow(9, 0, 17, 0)},
		})
		err := uc.EnsureWithinSession(context.Background(), "doc-1", "est-1", monday(9, 0), 30)
		assert.NoError(t, err)
	})

	t.Run("start exactly at window end is rejected", func(t *testing.T) {
		uc := newAvailabilityUsecase(&fakeSessionRepository{
			sessions: []models.Session{sessionWindow(9, 0, 17, 0)},
		})
		err := uc.EnsureWithinSession(context.Background(), "doc-1", "est-1", monday(17, 0), 30)
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
	})

	t.Run("start before window is rejected", func(t *testing.T) {
		uc := newAvailabilityUsecase(&fakeSessionRepository{
			sessions: []models.Session{sessionWindow(9, 0, 17, 0)},
		})
		err := uc.EnsureWithinSession(context.Background(), "doc-1", "est-1", monday(8, 59), 30)
		assert.Error(t, err)
	})

	t.Run("second session window can accept the start", func(t *testing.T) {
		uc := newAvailabilityUsecase(&fakeSessionRepository{
			sessions: []models.Session{
				sessionWindow(9, 0, 12, 0),
				sessionWindow(14, 0, 18, 0),
			},
		})
		err := uc.EnsureWithinSession(context.Background(), "doc-1", "est-1", monday(15, 0), 30)
		assert.NoError(t, err)
	})

	t.Run("no session for weekday", func(t *testing.T) {
		uc := newAvailabilityUsecase(&fakeSessionRepository{})
		err := uc.EnsureWithinSession(context.Background(), "doc-1", "est-1", monday(10, 0), 30)
		assert.Error(t, err)

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 400, customErr.StatusCode)
		assert.Contains(t, customErr.ClientMessage, "Monday")
	})

	t.Run("repository error is passed through", func(t *testing.T) {
		repoErr := errors.New("find failed")
		uc := newAvailabilityUsecase(&fakeSessionRepository{err: repoErr})
		err := uc.EnsureWithinSession(context.Background(), "doc-1", "est-1", monday(10, 0), 30)
		assert.ErrorIs(t, err, repoErr)
	})
}
