package contracts

import (
	"context"

	"psymate-service/internal/app/models"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (*models.User, error)
}
