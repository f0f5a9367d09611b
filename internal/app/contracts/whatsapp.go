package contracts

import (
	"context"

	"psymate-service/internal/pkg/dto/requests"
)

type WhatsAppService interface {
	SendTemplateMessage(ctx context.Context, message *requests.WhatsAppMessage) error
}
