package notifications

import (
	"context"
	"encoding/base64"
	"fmt"
	"psymate-service/internal/app/config"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/dto/requests"
	"psymate-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

// dispatchTimeout bounds one background notification run, PDF rendering and
// object storage included.
const dispatchTimeout = 2 * time.Minute

type notificationDispatcher struct {
	Renderer                contracts.DocumentRenderer
	Storage                 contracts.ObjectStorage
	Mailer                  contracts.MailerService
	WhatsApp                contracts.WhatsAppService
	OrderRepository         contracts.OrderRepository
	UserRepository          contracts.UserRepository
	EstablishmentRepository contracts.EstablishmentRepository
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

var (
	notificationDispatcherInstance contracts.NotificationDispatcher
	onceNotificationDispatcher     sync.Once
)

func NewNotificationDispatcher(
	renderer contracts.DocumentRenderer,
	storage contracts.ObjectStorage,
	mailerService contracts.MailerService,
	whatsAppService contracts.WhatsAppService,
	orderRepository contracts.OrderRepository,
	userRepository contracts.UserRepository,
	establishmentRepository contracts.EstablishmentRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.NotificationDispatcher {
	onceNotificationDispatcher.Do(func() {
		notificationDispatcherInstance = &notificationDispatcher{
			Renderer:                renderer,
			Storage:                 storage,
			Mailer:                  mailerService,
			WhatsApp:                whatsAppService,
			OrderRepository:         orderRepository,
			UserRepository:          userRepository,
			EstablishmentRepository: establishmentRepository,
			InternalConfig:          internalConfig,
			Log:                     logger,
		}
	})
	return notificationDispatcherInstance
}

func (d *notificationDispatcher) BookingCreated(booking *models.Booking, order *models.Order) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		d.runBookingCreated(ctx, booking, order)
	}()
}

func (d *notificationDispatcher) BookingRescheduled(booking *models.Booking, previousSlot, previousDate string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		d.runBookingRescheduled(ctx, booking, previousSlot, previousDate)
	}()
}

func (d *notificationDispatcher) BookingCancelled(booking *models.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		d.runBookingCancelled(ctx, booking)
	}()
}

func (d *notificationDispatcher) runBookingCreated(ctx context.Context, booking *models.Booking, order *models.Order) {
	d.Log.Info("notificationDispatcher.runBookingCreated started",
		zap.String(constvars.LoggingBookingIDKey, booking.BookingID),
	)

	d.publishInvoice(ctx, booking, order)
	d.publishConfirmation(ctx, booking)
}

// publishInvoice renders the invoice PDF, stores it, records the download
// URL on the order, and notifies the patient.
func (d *notificationDispatcher) publishInvoice(ctx context.Context, booking *models.Booking, order *models.Order) {
	html, err := renderInvoiceHTML(invoiceTemplateData{
		Order:    order,
		Booking:  booking,
		Currency: constvars.DefaultPaymentCurrency,
	})
	if err != nil {
		d.logStepFailure("publishInvoice render html", booking.BookingID, err)
		return
	}

	pdf, err := d.Renderer.RenderPDF(ctx, html)
	if err != nil {
		d.logStepFailure("publishInvoice render pdf", booking.BookingID, err)
		return
	}

	objectName := utils.GenerateDocumentName(fmt.Sprintf("invoice-%s", booking.BookingID))
	url, err := d.Storage.Upload(ctx, constvars.StorageFolderInvoices, objectName, constvars.MIMEApplicationPDF, pdf)
	if err != nil {
		d.logStepFailure("publishInvoice upload", booking.BookingID, err)
		return
	}

	if err := d.OrderRepository.SetDownloadURLs(ctx, order.InvoiceID, []string{url}); err != nil {
		d.logStepFailure("publishInvoice set download urls", booking.BookingID, err)
	}

	whatsAppMessage := &requests.WhatsAppMessage{
		Phone:         booking.Patient.Phone,
		TemplateName:  constvars.WhatsAppTemplateInvoiceWithPDF,
		BroadcastName: d.InternalConfig.App.WhatsAppBroadcastName,
		Parameters: []requests.WhatsAppParameter{
			{Name: "name", Value: booking.Patient.DisplayName},
			{Name: "invoice_id", Value: order.InvoiceID},
			{Name: "document", Value: url},
		},
	}
	if err := d.WhatsApp.SendTemplateMessage(ctx, whatsAppMessage); err != nil {
		d.logStepFailure("publishInvoice whatsapp", booking.BookingID, err)
	}

	email := &requests.EmailPayload{
		To:      booking.Patient.Email,
		From:    d.InternalConfig.App.MailerEmailSender,
		Subject: fmt.Sprintf("Invoice %s", order.InvoiceID),
		HTML:    html,
		Attachments: []requests.EmailAttachment{
			{
				Content:     base64.StdEncoding.EncodeToString(pdf),
				Filename:    objectName,
				Type:        constvars.MIMEApplicationPDF,
				Disposition: "attachment",
			},
		},
	}
	if err := d.Mailer.SendEmail(ctx, email); err != nil {
		d.logStepFailure("publishInvoice email", booking.BookingID, err)
	}
}

func (d *notificationDispatcher) publishConfirmation(ctx context.Context, booking *models.Booking) {
	location := d.visitLocation(ctx, booking)

	html, err := renderConfirmationHTML(confirmationTemplateData{
		Booking:  booking,
		Location: location,
	})
	if err != nil {
		d.logStepFailure("publishConfirmation render html", booking.BookingID, err)
		return
	}

	pdf, err := d.Renderer.RenderPDF(ctx, html)
	if err != nil {
		d.logStepFailure("publishConfirmation render pdf", booking.BookingID, err)
		return
	}

	objectName := utils.GenerateDocumentName(fmt.Sprintf("visit-%s", booking.BookingID))
	url, err := d.Storage.Upload(ctx, constvars.StorageFolderVisits, objectName, constvars.MIMEApplicationPDF, pdf)
	if err != nil {
		d.logStepFailure("publishConfirmation upload", booking.BookingID, err)
		return
	}

	parameters := func(name, counterpart string) []requests.WhatsAppParameter {
		return []requests.WhatsAppParameter{
			{Name: "name", Value: name},
			{Name: "counterpart", Value: counterpart},
			{Name: "date", Value: booking.AppointmentDate},
			{Name: "slot", Value: booking.Slot},
			{Name: "location", Value: location},
			{Name: "document", Value: url},
		}
	}

	patientMessage := &requests.WhatsAppMessage{
		Phone:         booking.Patient.Phone,
		TemplateName:  constvars.WhatsAppTemplateBookAppointment,
		BroadcastName: d.InternalConfig.App.WhatsAppBroadcastName,
		Parameters:    parameters(booking.Patient.DisplayName, booking.Doctor.DisplayName),
	}
	if err := d.WhatsApp.SendTemplateMessage(ctx, patientMessage); err != nil {
		d.logStepFailure("publishConfirmation whatsapp patient", booking.BookingID, err)
	}

	doctorMessage := &requests.WhatsAppMessage{
		Phone:         booking.Doctor.Phone,
		TemplateName:  constvars.WhatsAppTemplateBookAppointment,
		BroadcastName: d.InternalConfig.App.WhatsAppBroadcastName,
		Parameters:    parameters(booking.Doctor.DisplayName, booking.Patient.DisplayName),
	}
	if err := d.WhatsApp.SendTemplateMessage(ctx, doctorMessage); err != nil {
		d.logStepFailure("publishConfirmation whatsapp doctor", booking.BookingID, err)
	}

	subject := fmt.Sprintf("Appointment %s confirmed for %s", booking.BookingID, booking.AppointmentDate)
	for _, recipient := range []string{booking.Patient.Email, booking.Doctor.Email} {
		email := &requests.EmailPayload{
			To:      recipient,
			From:    d.InternalConfig.App.MailerEmailSender,
			Subject: subject,
			HTML:    html,
		}
		if err := d.Mailer.EnqueueEmail(ctx, email); err != nil {
			d.logStepFailure("publishConfirmation email", booking.BookingID, err)
		}
	}
}

func (d *notificationDispatcher) runBookingRescheduled(ctx context.Context, booking *models.Booking, previousSlot, previousDate string) {
	d.Log.Info("notificationDispatcher.runBookingRescheduled started",
		zap.String(constvars.LoggingBookingIDKey, booking.BookingID),
	)

	parameters := func(name string) []requests.WhatsAppParameter {
		return []requests.WhatsAppParameter{
			{Name: "name", Value: name},
			{Name: "old_slot", Value: previousSlot},
			{Name: "old_date", Value: previousDate},
			{Name: "new_slot", Value: booking.Slot},
			{Name: "new_date", Value: booking.AppointmentDate},
		}
	}

	for _, party := range []models.PartySnapshot{booking.Patient, booking.Doctor} {
		message := &requests.WhatsAppMessage{
			Phone:         party.Phone,
			TemplateName:  constvars.WhatsAppTemplateRescheduleBooking,
			BroadcastName: d.InternalConfig.App.WhatsAppBroadcastName,
			Parameters:    parameters(party.DisplayName),
		}
		if err := d.WhatsApp.SendTemplateMessage(ctx, message); err != nil {
			d.logStepFailure("runBookingRescheduled whatsapp", booking.BookingID, err)
		}

		email := &requests.EmailPayload{
			To:      party.Email,
			From:    d.InternalConfig.App.MailerEmailSender,
			Subject: fmt.Sprintf("Appointment %s rescheduled", booking.BookingID),
			HTML: fmt.Sprintf("<p>Your appointment has moved from %s (%s) to %s (%s).</p>",
				previousSlot, previousDate, booking.Slot, booking.AppointmentDate),
		}
		if err := d.Mailer.EnqueueEmail(ctx, email); err != nil {
			d.logStepFailure("runBookingRescheduled email", booking.BookingID, err)
		}
	}
}

func (d *notificationDispatcher) runBookingCancelled(ctx context.Context, booking *models.Booking) {
	d.Log.Info("notificationDispatcher.runBookingCancelled started",
		zap.String(constvars.LoggingBookingIDKey, booking.BookingID),
	)

	for _, party := range []models.PartySnapshot{booking.Patient, booking.Doctor} {
		message := &requests.WhatsAppMessage{
			Phone:         party.Phone,
			TemplateName:  constvars.WhatsAppTemplateCancellationNotice,
			BroadcastName: d.InternalConfig.App.WhatsAppBroadcastName,
			Parameters: []requests.WhatsAppParameter{
				{Name: "name", Value: party.DisplayName},
				{Name: "date", Value: booking.AppointmentDate},
				{Name: "slot", Value: booking.Slot},
			},
		}
		if err := d.WhatsApp.SendTemplateMessage(ctx, message); err != nil {
			d.logStepFailure("runBookingCancelled whatsapp", booking.BookingID, err)
		}

		email := &requests.EmailPayload{
			To:      party.Email,
			From:    d.InternalConfig.App.MailerEmailSender,
			Subject: fmt.Sprintf("Appointment %s cancelled", booking.BookingID),
			HTML: fmt.Sprintf("<p>The appointment on %s (%s) has been cancelled.</p>",
				booking.AppointmentDate, booking.Slot),
		}
		if err := d.Mailer.EnqueueEmail(ctx, email); err != nil {
			d.logStepFailure("runBookingCancelled email", booking.BookingID, err)
		}
	}
}

// visitLocation resolves where the visit happens. Virtual establishments use
// the doctor's meet link; physical ones use the establishment address.
func (d *notificationDispatcher) visitLocation(ctx context.Context, booking *models.Booking) string {
	if booking.Establishment.DisplayName == constvars.VirtualEstablishmentName {
		doctor, err := d.UserRepository.FindByID(ctx, booking.Doctor.ID)
		if err == nil && doctor != nil && doctor.MeetLink != "" {
			return doctor.MeetLink
		}
	}
	establishment, err := d.EstablishmentRepository.FindByID(ctx, booking.Establishment.ID)
	if err == nil && establishment != nil && establishment.EstablishmentAddress != "" {
		return establishment.EstablishmentAddress
	}
	return booking.Establishment.DisplayName
}

func (d *notificationDispatcher) logStepFailure(step, bookingID string, err error) {
	d.Log.Error("notificationDispatcher step failed",
		zap.String("step", step),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.Error(err),
	)
}
