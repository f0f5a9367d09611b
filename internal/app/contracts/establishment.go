package contracts

import (
	"context"

	"psymate-service/internal/app/models"
)

type EstablishmentRepository interface {
	FindByID(ctx context.Context, establishmentID string) (*models.Establishment, error)
}
