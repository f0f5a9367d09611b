package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/app/drivers/mailer"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/dto/requests"
	"psymate-service/internal/pkg/exceptions"
	"strings"
	"sync"

	"github.com/rabbitmq/amqp091-go"
)

type mailerService struct {
	Channel *amqp091.Channel
	Client  *mailer.SMTPClient
	Queue   string
}

var (
	mailerServiceInstance contracts.MailerService
	onceMailerService     sync.Once
	mailerServiceError    error
)

func NewMailerService(client *mailer.SMTPClient, rabbitMQConnection *amqp091.Connection, queue string) (contracts.MailerService, error) {
	onceMailerService.Do(func() {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			mailerServiceError = err
			return
		}
		mailerServiceInstance = &mailerService{
			Channel: channel,
			Client:  client,
			Queue:   queue,
		}
	})
	return mailerServiceInstance, mailerServiceError
}

func (s *mailerService) EnqueueEmail(ctx context.Context, request *requests.EmailPayload) error {
	body, err := json.Marshal(request)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	headers := amqp091.Table{
		"message_type":     "JSON",
		"requeue_strategy": "DROP",
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		Headers:      headers,
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}

	return nil
}

func (s *mailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	from := request.From
	if from == "" {
		from = s.Client.EmailSender
	}

	var msg strings.Builder
	boundary := "simple boundary"
	msg.WriteString(fmt.Sprintf("To: %s\r\n", request.To))
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", request.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if len(request.Attachments) == 0 {
		msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		msg.WriteString(request.HTML)
	} else {
		msg.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", boundary))
		msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		msg.WriteString(request.HTML)
		msg.WriteString("\r\n")
		for _, attachment := range request.Attachments {
			msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
			msg.WriteString(fmt.Sprintf("Content-Type: %s\r\n", attachment.Type))
			msg.WriteString("Content-Transfer-Encoding: base64\r\n")
			msg.WriteString(fmt.Sprintf("Content-Disposition: %s; filename=\"%s\"\r\n\r\n", attachment.Disposition, attachment.Filename))
			msg.WriteString(attachment.Content)
			msg.WriteString("\r\n")
		}
		msg.WriteString(fmt.Sprintf("--%s--", boundary))
	}

	addr := fmt.Sprintf("%s:%d", s.Client.Host, s.Client.Port)
	err := smtp.SendMail(addr, s.Client.Auth, from, []string{request.To}, []byte(msg.String()))
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, s.Client.Host)
	}
	return nil
}
