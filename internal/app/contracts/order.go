package contracts

import (
	"context"

	"psymate-service/internal/app/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	Count(ctx context.Context) (int64, error)
	FindByInvoiceID(ctx context.Context, invoiceID string) (*models.Order, error)
	SetDownloadURLs(ctx context.Context, invoiceID string, urls []string) error
}
