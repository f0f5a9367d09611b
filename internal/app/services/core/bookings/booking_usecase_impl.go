package bookings

import (
	"context"
	"fmt"
	"psymate-service/internal/app/config"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/dto/requests"
	"psymate-service/internal/pkg/dto/responses"
	"psymate-service/internal/pkg/exceptions"
	"psymate-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

type bookingUsecase struct {
	BookingRepository       contracts.BookingRepository
	OrderRepository         contracts.OrderRepository
	TimelineRepository      contracts.TimelineRepository
	UserRepository          contracts.UserRepository
	EstablishmentRepository contracts.EstablishmentRepository
	AvailabilityUsecase     contracts.AvailabilityUsecase
	PricingUsecase          contracts.PricingUsecase
	LockerService           contracts.LockerService
	Dispatcher              contracts.NotificationDispatcher
	InternalConfig          *config.InternalConfig
	Log                     *zap.Logger
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	bookingRepository contracts.BookingRepository,
	orderRepository contracts.OrderRepository,
	timelineRepository contracts.TimelineRepository,
	userRepository contracts.UserRepository,
	establishmentRepository contracts.EstablishmentRepository,
	availabilityUsecase contracts.AvailabilityUsecase,
	pricingUsecase contracts.PricingUsecase,
	lockerService contracts.LockerService,
	dispatcher contracts.NotificationDispatcher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = &bookingUsecase{
			BookingRepository:       bookingRepository,
			OrderRepository:         orderRepository,
			TimelineRepository:      timelineRepository,
			UserRepository:          userRepository,
			EstablishmentRepository: establishmentRepository,
			AvailabilityUsecase:     availabilityUsecase,
			PricingUsecase:          pricingUsecase,
			LockerService:           lockerService,
			Dispatcher:              dispatcher,
			InternalConfig:          internalConfig,
			Log:                     logger,
		}
	})
	return bookingUsecaseInstance
}

func slotLockKey(doctorID, establishmentID string) string {
	return fmt.Sprintf("booking:slotlock:%s:%s", doctorID, establishmentID)
}

func (uc *bookingUsecase) CreateBooking(ctx context.Context, request *requests.CreateBookingRequest, timezone string) (*responses.CreatedBooking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, request.Patient),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingEstablishmentIDKey, request.EstablishmentID),
	)

	start, err := utils.ParseStartTime(request.StartTime)
	if err != nil {
		return nil, exceptions.ErrInvalidStartTimeFormat(err)
	}
	end := start.Add(time.Duration(request.Duration) * time.Minute)

	patient, err := uc.UserRepository.FindByID(ctx, request.Patient)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, exceptions.ErrPatientNotFound(fmt.Errorf("patient %s not found", request.Patient))
	}

	doctor, err := uc.UserRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", request.DoctorID))
	}

	establishment, err := uc.EstablishmentRepository.FindByID(ctx, request.EstablishmentID)
	if err != nil {
		return nil, err
	}
	if establishment == nil {
		return nil, exceptions.ErrEstablishmentNotFound(fmt.Errorf("establishment %s not found", request.EstablishmentID))
	}

	err = uc.AvailabilityUsecase.EnsureWithinSession(ctx, request.DoctorID, request.EstablishmentID, start, request.Duration)
	if err != nil {
		return nil, err
	}

	// The lock covers the gap between the conflict check and the insert.
	// Redis being down degrades to the bare conflict check with a warning.
	lockKey := slotLockKey(request.DoctorID, request.EstablishmentID)
	lockTTL := time.Duration(uc.InternalConfig.App.SlotLockTTLInSeconds) * time.Second
	acquired, lockValue, lockErr := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if lockErr != nil {
		uc.Log.Warn("bookingUsecase.CreateBooking proceeding without slot lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(lockErr),
		)
	} else if !acquired {
		return nil, exceptions.ErrSlotLocked(fmt.Errorf("lock %s already held", lockKey))
	} else {
		defer func() {
			if err := uc.LockerService.Unlock(ctx, lockKey, lockValue); err != nil {
				uc.Log.Warn("bookingUsecase.CreateBooking failed releasing slot lock",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingRedisKey, lockKey),
					zap.Error(err),
				)
			}
		}()
	}

	conflicting, err := uc.BookingRepository.FindOverlapping(ctx, request.DoctorID, request.EstablishmentID, start, end, "")
	if err != nil {
		return nil, err
	}
	if conflicting != nil {
		return nil, exceptions.ErrSlotConflict(
			fmt.Errorf("overlaps appointment %s", conflicting.BookingID),
			conflicting.Slot,
			conflicting.Patient.DisplayName,
		)
	}

	amountPaid := request.AmountPaid()
	price, err := uc.PricingUsecase.Price(ctx, contracts.PriceRequest{
		BaseRatePerMinute: doctor.Price,
		DurationMinutes:   request.Duration,
		CouponCode:        request.Coupon,
		UserID:            request.Patient,
		AmountPaid:        amountPaid,
	})
	if err != nil {
		return nil, err
	}

	orderCount, err := uc.OrderRepository.Count(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	bookingID := utils.GenerateBookingID(now, orderCount+1)

	status := constvars.BookingStatusScheduled
	if amountPaid == price.Payable {
		status = constvars.BookingStatusConfirmed
	}
	dueAmount := price.Payable - amountPaid

	location := utils.LoadTimezone(timezone)
	slot := utils.FormatSlotLabel(start, end, location)
	appointmentDate := start.UTC().Format(constvars.SlotDateFormat)

	booking := &models.Booking{
		BookingID:       bookingID,
		Patient:         partySnapshot(patient),
		Doctor:          partySnapshot(doctor),
		Establishment:   establishmentSnapshot(establishment),
		StartTime:       start,
		EndTime:         end,
		Duration:        request.Duration,
		Slot:            slot,
		AppointmentDate: appointmentDate,
		Status:          status,
		Deleted:         false,
		DueAmount:       dueAmount,
		Coupon:          price.Coupon,
		Payment:         paymentRecords(request.Payment, price.Discount),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	booking, err = uc.BookingRepository.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	order := uc.buildOrder(booking, patient, doctor, price, amountPaid, now)
	order, err = uc.OrderRepository.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	timeline := &models.Timeline{
		PostID: bookingID,
		UserID: []string{request.Patient, request.DoctorID},
		Type:   constvars.TimelineTypeAppointment,
		Title:  constvars.TimelineTitleAppointment,
		Description: fmt.Sprintf("Appointment booked with %s at %s for %s",
			doctor.DisplayNameWithPrefix(), establishment.EstablishmentName, slot),
		Reference: map[string]any{"bookingId": bookingID},
		CreatedAt: now,
	}
	if err := uc.TimelineRepository.Create(ctx, timeline); err != nil {
		return nil, err
	}

	uc.Log.Info("bookingUsecase.CreateBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.String(constvars.LoggingSlotKey, slot),
	)

	uc.Dispatcher.BookingCreated(booking, order)

	return &responses.CreatedBooking{
		Appointment: booking,
		Order:       order,
	}, nil
}

func (uc *bookingUsecase) RescheduleBooking(ctx context.Context, bookingID string, request *requests.RescheduleBookingRequest, timezone string) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.RescheduleBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	booking, err := uc.BookingRepository.FindActiveByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(fmt.Errorf("appointment %s not found", bookingID))
	}
	if booking.Patient.ID != request.Patient {
		return nil, exceptions.ErrRescheduleNotOwner(fmt.Errorf("patient %s does not own appointment %s", request.Patient, bookingID))
	}

	start, err := utils.ParseStartTime(request.StartTime)
	if err != nil {
		return nil, exceptions.ErrInvalidStartTimeFormat(err)
	}
	end := start.Add(time.Duration(request.Duration) * time.Minute)

	doctor, err := uc.UserRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(fmt.Errorf("doctor %s not found", request.DoctorID))
	}

	establishment, err := uc.EstablishmentRepository.FindByID(ctx, request.EstablishmentID)
	if err != nil {
		return nil, err
	}
	if establishment == nil {
		return nil, exceptions.ErrEstablishmentNotFound(fmt.Errorf("establishment %s not found", request.EstablishmentID))
	}

	err = uc.AvailabilityUsecase.EnsureWithinSession(ctx, request.DoctorID, request.EstablishmentID, start, request.Duration)
	if err != nil {
		return nil, err
	}

	lockKey := slotLockKey(request.DoctorID, request.EstablishmentID)
	lockTTL := time.Duration(uc.InternalConfig.App.SlotLockTTLInSeconds) * time.Second
	acquired, lockValue, lockErr := uc.LockerService.TryLock(ctx, lockKey, lockTTL)
	if lockErr != nil {
		uc.Log.Warn("bookingUsecase.RescheduleBooking proceeding without slot lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, lockKey),
			zap.Error(lockErr),
		)
	} else if !acquired {
		return nil, exceptions.ErrSlotLocked(fmt.Errorf("lock %s already held", lockKey))
	} else {
		defer func() {
			if err := uc.LockerService.Unlock(ctx, lockKey, lockValue); err != nil {
				uc.Log.Warn("bookingUsecase.RescheduleBooking failed releasing slot lock",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingRedisKey, lockKey),
					zap.Error(err),
				)
			}
		}()
	}

	conflicting, err := uc.BookingRepository.FindOverlapping(ctx, request.DoctorID, request.EstablishmentID, start, end, bookingID)
	if err != nil {
		return nil, err
	}
	if conflicting != nil {
		return nil, exceptions.ErrSlotConflict(
			fmt.Errorf("overlaps appointment %s", conflicting.BookingID),
			conflicting.Slot,
			conflicting.Patient.DisplayName,
		)
	}

	previousSlot := booking.Slot
	previousDate := booking.AppointmentDate

	location := utils.LoadTimezone(timezone)
	booking.Doctor = partySnapshot(doctor)
	booking.Establishment = establishmentSnapshot(establishment)
	booking.StartTime = start
	booking.EndTime = end
	booking.Duration = request.Duration
	booking.Slot = utils.FormatSlotLabel(start, end, location)
	booking.AppointmentDate = start.UTC().Format(constvars.SlotDateFormat)
	booking.UpdatedAt = time.Now().UTC()

	if err := uc.BookingRepository.UpdateSlot(ctx, booking); err != nil {
		return nil, err
	}

	timeline := &models.Timeline{
		PostID: bookingID,
		UserID: []string{booking.Patient.ID, booking.Doctor.ID},
		Type:   constvars.TimelineTypeAppointment,
		Title:  constvars.TimelineTitleAppointmentReschedule,
		Description: fmt.Sprintf("Appointment rescheduled from %s (%s) to %s (%s)",
			previousSlot, previousDate, booking.Slot, booking.AppointmentDate),
		Reference: map[string]any{"bookingId": bookingID},
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.TimelineRepository.Create(ctx, timeline); err != nil {
		return nil, err
	}

	uc.Log.Info("bookingUsecase.RescheduleBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.String(constvars.LoggingSlotKey, booking.Slot),
	)

	uc.Dispatcher.BookingRescheduled(booking, previousSlot, previousDate)

	return booking, nil
}

func (uc *bookingUsecase) CancelBooking(ctx context.Context, bookingID string, timezone string) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.CancelBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	booking, err := uc.BookingRepository.CancelByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFoundOrCancelled(fmt.Errorf("appointment %s not found or already cancelled", bookingID))
	}

	timeline := &models.Timeline{
		PostID: bookingID,
		UserID: []string{booking.Patient.ID, booking.Doctor.ID},
		Type:   constvars.TimelineTypeAppointment,
		Title:  constvars.TimelineTitleAppointmentCancelled,
		Description: fmt.Sprintf("Appointment with %s on %s (%s) cancelled",
			booking.Doctor.DisplayName, booking.AppointmentDate, booking.Slot),
		Reference: map[string]any{"bookingId": bookingID},
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.TimelineRepository.Create(ctx, timeline); err != nil {
		return nil, err
	}

	uc.Log.Info("bookingUsecase.CancelBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)

	uc.Dispatcher.BookingCancelled(booking)

	return booking, nil
}

func (uc *bookingUsecase) FindBookingDetail(ctx context.Context, bookingID string) (*responses.BookingDetail, error) {
	booking, err := uc.BookingRepository.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(fmt.Errorf("appointment %s not found", bookingID))
	}

	order, err := uc.OrderRepository.FindByInvoiceID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	timelines, err := uc.TimelineRepository.FindByPostID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return &responses.BookingDetail{
		Appointment:      booking,
		RelatedOrder:     order,
		RelatedTimelines: timelines,
	}, nil
}

func (uc *bookingUsecase) FindBookingsByUser(ctx context.Context, userID string, pagination requests.Pagination) ([]models.Booking, int, error) {
	return uc.BookingRepository.FindByUser(ctx, userID, pagination)
}

func (uc *bookingUsecase) FindAllBookings(ctx context.Context, pagination requests.Pagination) ([]models.Booking, int, error) {
	return uc.BookingRepository.FindAll(ctx, pagination)
}

func (uc *bookingUsecase) buildOrder(booking *models.Booking, patient, doctor *models.User, price *contracts.PriceResult, amountPaid float64, now time.Time) *models.Order {
	orderStatus := constvars.OrderStatusDue
	if booking.DueAmount == 0 {
		orderStatus = constvars.OrderStatusPaid
	}

	var address models.Address
	if len(patient.Addresses) > 0 {
		address = patient.Addresses[0]
	}

	company := uc.InternalConfig.Company
	return &models.Order{
		InvoiceID: booking.BookingID,
		User:      booking.Patient,
		Address:   address,
		Items: []models.OrderItem{
			{
				ID:            doctor.ID.Hex(),
				Collection:    constvars.MongoCollectionUsers,
				Name:          constvars.OrderItemNameAppointment,
				SellingPrice:  price.TotalBillAmount,
				ItemTotal:     price.Payable,
				Orders:        1,
				Category:      constvars.OrderItemCategory,
				PublishedDate: now.Format(constvars.SlotDateFormat),
				Status:        orderStatus,
				Type:          constvars.OrderItemTypeService,
				Discount:      price.Discount,
				Quantity:      1,
			},
		},
		Payment: booking.Payment,
		Company: models.CompanySnapshot{
			DisplayName: company.Name,
			Phone:       company.Phone,
			Email:       company.Email,
			Logo:        company.Logo,
			Website:     company.Website,
		},
		Type:          constvars.OrderTypeAppointment,
		Title:         fmt.Sprintf("Appointment with %s", doctor.DisplayNameWithPrefix()),
		Notes:         booking.Slot,
		AutoGenerated: true,
		TotalAmount:   price.TotalBillAmount,
		TotalPaid:     amountPaid,
		DueAmount:     booking.DueAmount,
		Discount:      price.Discount,
		Status:        orderStatus,
		CreatedBy:     booking.Patient,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func partySnapshot(user *models.User) models.PartySnapshot {
	return models.PartySnapshot{
		ID:          user.ID.Hex(),
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Phone:       user.Phone,
		PsyID:       user.PsyID,
	}
}

func establishmentSnapshot(establishment *models.Establishment) models.EstablishmentSnapshot {
	return models.EstablishmentSnapshot{
		ID:          establishment.ID.Hex(),
		DisplayName: establishment.EstablishmentName,
		Phone:       establishment.Phone,
		Email:       establishment.Email,
	}
}

func paymentRecords(entries []requests.PaymentEntry, discount float64) []models.PaymentRecord {
	records := make([]models.PaymentRecord, 0, len(entries))
	for _, entry := range entries {
		currency := entry.Currency
		if currency == "" {
			currency = constvars.DefaultPaymentCurrency
		}
		records = append(records, models.PaymentRecord{
			AmtPaid:  entry.AmtPaid,
			Currency: currency,
			Discount: discount,
			Mode:     entry.Mode,
		})
	}
	return records
}
