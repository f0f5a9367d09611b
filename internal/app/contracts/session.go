package contracts

import (
	"context"

	"psymate-service/internal/app/models"
)

type SessionRepository interface {
	FindByDoctorAndWeekday(ctx context.Context, doctorID, establishmentID, weekday string) ([]models.Session, error)
}
