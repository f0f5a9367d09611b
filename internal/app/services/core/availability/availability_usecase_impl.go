package availability

import (
	"context"
	"fmt"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/exceptions"
	"psymate-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type availabilityUsecase struct {
	SessionRepository contracts.SessionRepository
	Log               *zap.Logger
}

var (
	availabilityUsecaseInstance contracts.AvailabilityUsecase
	onceAvailabilityUsecase     sync.Once
)

func NewAvailabilityUsecase(sessionRepository contracts.SessionRepository, logger *zap.Logger) contracts.AvailabilityUsecase {
	onceAvailabilityUsecase.Do(func() {
		availabilityUsecaseInstance = &availabilityUsecase{
			SessionRepository: sessionRepository,
			Log:               logger,
		}
	})
	return availabilityUsecaseInstance
}

func (uc *availabilityUsecase) EnsureWithinSession(ctx context.Context, doctorID, establishmentID string, start time.Time, durationMinutes int) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	weekday := utils.WeekdayName(start)

	uc.Log.Info("availabilityUsecase.EnsureWithinSession called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingEstablishmentIDKey, establishmentID),
		zap.String("weekday", weekday),
	)

	sessions, err := uc.SessionRepository.FindByDoctorAndWeekday(ctx, doctorID, establishmentID, weekday)
	if err != nil {
		uc.Log.Error("availabilityUsecase.EnsureWithinSession error fetching sessions",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	if len(sessions) == 0 {
		uc.Log.Info("availabilityUsecase.EnsureWithinSession no sessions for weekday",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.String("weekday", weekday),
		)
		return exceptions.ErrNoSessionForWeekday(fmt.Errorf("no sessions on %s", weekday), weekday)
	}

	// The session times carry only a time of day. Project each window onto
	// the requested date and accept the start when some window contains it.
	for _, session := range sessions {
		windowStart := utils.ProjectTimeOfDay(start, session.StartTime)
		windowEnd := utils.ProjectTimeOfDay(start, session.EndTime)
		if !start.Before(windowStart) && start.Before(windowEnd) {
			uc.Log.Info("availabilityUsecase.EnsureWithinSession start accepted",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Time("window_start", windowStart),
				zap.Time("window_end", windowEnd),
			)
			return nil
		}
	}

	uc.Log.Info("availabilityUsecase.EnsureWithinSession start outside every session window",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Time("start", start),
	)
	return exceptions.ErrOutsideSessionWindow(fmt.Errorf("start %s outside session windows", start.Format(time.RFC3339)))
}
