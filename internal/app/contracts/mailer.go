package contracts

import (
	"context"

	"psymate-service/internal/pkg/dto/requests"
)

type MailerService interface {
	// EnqueueEmail hands the payload to the mail queue for background delivery.
	EnqueueEmail(ctx context.Context, payload *requests.EmailPayload) error
	// SendEmail delivers the payload directly over SMTP.
	SendEmail(ctx context.Context, payload *requests.EmailPayload) error
}
