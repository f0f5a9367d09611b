package contracts

import (
	"context"

	"psymate-service/internal/app/models"
)

type TimelineRepository interface {
	Create(ctx context.Context, timeline *models.Timeline) error
	FindByPostID(ctx context.Context, postID string) ([]models.Timeline, error)
}
