package bookings

import (
	"context"
	"fmt"
	"psymate-service/internal/app/config"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/dto/requests"
	"psymate-service/internal/pkg/exceptions"
	"psymate-service/internal/pkg/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeBookingRepository struct {
	bookings []*models.Booking
}

func (f *fakeBookingRepository) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.ID = primitive.NewObjectID()
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeBookingRepository) FindByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.BookingID == bookingID {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepository) FindActiveByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.BookingID == bookingID && !b.Deleted {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepository) FindOverlapping(ctx context.Context, doctorID, establishmentID string, start, end time.Time, excludeBookingID string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.Deleted || b.Doctor.ID != doctorID || b.Establishment.ID != establishmentID {
			continue
		}
		if excludeBookingID != "" && b.BookingID == excludeBookingID {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepository) FindByUser(ctx context.Context, userID string, pagination requests.Pagination) ([]models.Booking, int, error) {
	matched := make([]models.Booking, 0)
	for _, b := range f.bookings {
		if b.Deleted {
			continue
		}
		if b.Patient.ID == userID || b.Doctor.ID == userID {
			matched = append(matched, *b)
		}
	}
	return matched, len(matched), nil
}

func (f *fakeBookingRepository) FindAll(ctx context.Context, pagination requests.Pagination) ([]models.Booking, int, error) {
	matched := make([]models.Booking, 0)
	for _, b := range f.bookings {
		if !b.Deleted {
			matched = append(matched, *b)
		}
	}
	return matched, len(matched), nil
}

func (f *fakeBookingRepository) UpdateSlot(ctx context.Context, booking *models.Booking) error {
	for _, b := range f.bookings {
		if b.BookingID == booking.BookingID && !b.Deleted {
			*b = *booking
			return nil
		}
	}
	return exceptions.ErrBookingNotFound(fmt.Errorf("appointment %s not found", booking.BookingID))
}

func (f *fakeBookingRepository) CancelByBookingID(ctx context.Context, bookingID string) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.BookingID == bookingID && !b.Deleted {
			b.Status = constvars.BookingStatusCancelled
			b.Deleted = true
			return b, nil
		}
	}
	return nil, nil
}

type fakeOrderRepository struct {
	orders []*models.Order
}

func (f *fakeOrderRepository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	order.ID = primitive.NewObjectID()
	f.orders = append(f.orders, order)
	return order, nil
}

func (f *fakeOrderRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepository) FindByInvoiceID(ctx context.Context, invoiceID string) (*models.Order, error) {
	for _, o := range f.orders {
		if o.InvoiceID == invoiceID {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepository) SetDownloadURLs(ctx context.Context, invoiceID string, urls []string) error {
	for _, o := range f.orders {
		if o.InvoiceID == invoiceID {
			o.Download = urls
			return nil
		}
	}
	return nil
}

type fakeTimelineRepository struct {
	entries []*models.Timeline
}

func (f *fakeTimelineRepository) Create(ctx context.Context, timeline *models.Timeline) error {
	f.entries = append(f.entries, timeline)
	return nil
}

func (f *fakeTimelineRepository) FindByPostID(ctx context.Context, postID string) ([]models.Timeline, error) {
	matched := make([]models.Timeline, 0)
	for _, e := range f.entries {
		if e.PostID == postID {
			matched = append(matched, *e)
		}
	}
	return matched, nil
}

type fakeUserRepository struct {
	users map[string]*models.User
}

func (f *fakeUserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	return f.users[userID], nil
}

type fakeEstablishmentRepository struct {
	establishments map[string]*models.Establishment
}

func (f *fakeEstablishmentRepository) FindByID(ctx context.Context, establishmentID string) (*models.Establishment, error) {
	return f.establishments[establishmentID], nil
}

type fakeAvailabilityUsecase struct {
	err error
}

func (f *fakeAvailabilityUsecase) EnsureWithinSession(ctx context.Context, doctorID, establishmentID string, start time.Time, durationMinutes int) error {
	return f.err
}

type fakePricingUsecase struct{}

func (f *fakePricingUsecase) Price(ctx context.Context, request contracts.PriceRequest) (*contracts.PriceResult, error) {
	total := request.BaseRatePerMinute * float64(request.DurationMinutes)
	if request.AmountPaid > total {
		return nil, exceptions.ErrOverPayment(fmt.Errorf("paid %.2f exceeds payable %.2f", request.AmountPaid, total))
	}
	return &contracts.PriceResult{
		TotalBillAmount: total,
		Payable:         total,
	}, nil
}

type fakeLockerService struct {
	acquired bool
	err      error
	locked   []string
	released []string
}

func (f *fakeLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if f.err != nil {
		return false, "", f.err
	}
	f.locked = append(f.locked, key)
	return f.acquired, "lock-token", nil
}

func (f *fakeLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	f.released = append(f.released, key)
	return nil
}

type fakeDispatcher struct {
	created     int
	rescheduled int
	cancelled   int
	lastOldSlot string
}

func (f *fakeDispatcher) BookingCreated(booking *models.Booking, order *models.Order) { f.created++ }
func (f *fakeDispatcher) BookingRescheduled(booking *models.Booking, previousSlot, previousDate string) {
	f.rescheduled++
	f.lastOldSlot = previousSlot
}
func (f *fakeDispatcher) BookingCancelled(booking *models.Booking) { f.cancelled++ }

type usecaseFixture struct {
	usecase       *bookingUsecase
	bookingRepo   *fakeBookingRepository
	orderRepo     *fakeOrderRepository
	timelineRepo  *fakeTimelineRepository
	locker        *fakeLockerService
	dispatcher    *fakeDispatcher
	patientID     string
	doctorID      string
	establishment string
}

func newFixture() *usecaseFixture {
	patientObjectID := primitive.NewObjectID()
	doctorObjectID := primitive.NewObjectID()
	establishmentObjectID := primitive.NewObjectID()

	bookingRepo := &fakeBookingRepository{}
	orderRepo := &fakeOrderRepository{}
	timelineRepo := &fakeTimelineRepository{}
	lockerService := &fakeLockerService{acquired: true}
	dispatcher := &fakeDispatcher{}

	userRepo := &fakeUserRepository{users: map[string]*models.User{
		patientObjectID.Hex(): {
			ID:          patientObjectID,
			DisplayName: "Asha Rao",
			Email:       "asha@example.com",
			Phone:       "+911111111111",
			Addresses:   []models.Address{{City: "Hyderabad", Country: "India"}},
		},
		doctorObjectID.Hex(): {
			ID:          doctorObjectID,
			DisplayName: "Mehta",
			Prefix:      "Dr.",
			Email:       "mehta@example.com",
			Phone:       "+912222222222",
			Price:       50,
		},
	}}
	establishmentRepo := &fakeEstablishmentRepository{establishments: map[string]*models.Establishment{
		establishmentObjectID.Hex(): {
			ID:                establishmentObjectID,
			EstablishmentName: "Downtown Clinic",
			Phone:             "+913333333333",
			Email:             "clinic@example.com",
		},
	}}

	usecase := &bookingUsecase{
		BookingRepository:       bookingRepo,
		OrderRepository:         orderRepo,
		TimelineRepository:      timelineRepo,
		UserRepository:          userRepo,
		EstablishmentRepository: establishmentRepo,
		AvailabilityUsecase:     &fakeAvailabilityUsecase{},
		PricingUsecase:          &fakePricingUsecase{},
		LockerService:           lockerService,
		Dispatcher:              dispatcher,
		InternalConfig: &config.InternalConfig{
			App: config.App{SlotLockTTLInSeconds: 15},
		},
		Log: zap.NewNop(),
	}

	return &usecaseFixture{
		usecase:       usecase,
		bookingRepo:   bookingRepo,
		orderRepo:     orderRepo,
		timelineRepo:  timelineRepo,
		locker:        lockerService,
		dispatcher:    dispatcher,
		patientID:     patientObjectID.Hex(),
		doctorID:      doctorObjectID.Hex(),
		establishment: establishmentObjectID.Hex(),
	}
}

func (f *usecaseFixture) createRequest(startTime string, duration int, payments ...requests.PaymentEntry) *requests.CreateBookingRequest {
	return &requests.CreateBookingRequest{
		Patient:         f.patientID,
		DoctorID:        f.doctorID,
		EstablishmentID: f.establishment,
		StartTime:       startTime,
		Duration:        duration,
		Payment:         payments,
	}
}

func statusCodeOf(t *testing.T, err error) int {
	t.Helper()
	var customErr *exceptions.CustomError
	assert.ErrorAs(t, err, &customErr)
	return customErr.StatusCode
}

func TestCreateBooking(t *testing.T) {
	t.Run("fully paid booking is confirmed", func(t *testing.T) {
		f := newFixture()
		response, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30, requests.PaymentEntry{AmtPaid: 1500}), "UTC")
		assert.NoError(t, err)

		booking := response.Appointment
		assert.Equal(t, constvars.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, 0.0, booking.DueAmount)
		assert.Equal(t, utils.GenerateBookingID(time.Now().UTC(), 1), booking.BookingID)
		assert.Equal(t, "09:00 - 09:30,2026-03-02", booking.Slot)
		assert.Equal(t, "2026-03-02", booking.AppointmentDate)
		assert.Equal(t, booking.StartTime.Add(30*time.Minute), booking.EndTime)
		assert.Equal(t, constvars.DefaultPaymentCurrency, booking.Payment[0].Currency)

		order := response.Order
		assert.Equal(t, booking.BookingID, order.InvoiceID)
		assert.Equal(t, constvars.OrderStatusPaid, order.Status)
		assert.Equal(t, 1500.0, order.TotalAmount)
		assert.True(t, order.AutoGenerated)

		assert.Len(t, f.timelineRepo.entries, 1)
		assert.Equal(t, booking.BookingID, f.timelineRepo.entries[0].PostID)
		assert.Equal(t, 1, f.dispatcher.created)
		assert.Len(t, f.locker.released, 1)
	})

	t.Run("partial payment stays scheduled with due amount", func(t *testing.T) {
		f := newFixture()
		response, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30, requests.PaymentEntry{AmtPaid: 500}), "UTC")
		assert.NoError(t, err)

		assert.Equal(t, constvars.BookingStatusScheduled, response.Appointment.Status)
		assert.Equal(t, 1000.0, response.Appointment.DueAmount)
		assert.Equal(t, constvars.OrderStatusDue, response.Order.Status)
	})

	t.Run("zero payment stays scheduled", func(t *testing.T) {
		f := newFixture()
		response, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)
		assert.Equal(t, constvars.BookingStatusScheduled, response.Appointment.Status)
		assert.Equal(t, 1500.0, response.Appointment.DueAmount)
	})

	t.Run("overlapping slot is rejected with conflict", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)

		_, err = f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:15:00Z", 30), "UTC")
		assert.Error(t, err)
		assert.Equal(t, 409, statusCodeOf(t, err))
		assert.Len(t, f.bookingRepo.bookings, 1)
	})

	t.Run("back to back slots do not conflict", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)

		_, err = f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:30:00Z", 30), "UTC")
		assert.NoError(t, err)
		assert.Len(t, f.bookingRepo.bookings, 2)
	})

	t.Run("cancelled booking does not block the slot", func(t *testing.T) {
		f := newFixture()
		response, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)

		_, err = f.usecase.CancelBooking(context.Background(), response.Appointment.BookingID, "UTC")
		assert.NoError(t, err)

		_, err = f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)
	})

	t.Run("invalid start time format", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("02-03-2026 09:00", 30), "UTC")
		assert.Error(t, err)
		assert.Equal(t, 400, statusCodeOf(t, err))
	})

	t.Run("unknown patient", func(t *testing.T) {
		f := newFixture()
		request := f.createRequest("2026-03-02T09:00:00Z", 30)
		request.Patient = primitive.NewObjectID().Hex()
		_, err := f.usecase.CreateBooking(context.Background(), request, "UTC")
		assert.Error(t, err)
		assert.Equal(t, 400, statusCodeOf(t, err))
	})

	t.Run("lock contention returns conflict", func(t *testing.T) {
		f := newFixture()
		f.locker.acquired = false
		_, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.Error(t, err)
		assert.Equal(t, 409, statusCodeOf(t, err))
	})

	t.Run("locker outage degrades to plain conflict check", func(t *testing.T) {
		f := newFixture()
		f.locker.err = fmt.Errorf("redis unreachable")
		response, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)
		assert.NotNil(t, response.Appointment)
	})

	t.Run("slot label honors timezone header", func(t *testing.T) {
		f := newFixture()
		response, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "Asia/Kolkata")
		assert.NoError(t, err)
		assert.Equal(t, "14:30 - 15:00,2026-03-02", response.Appointment.Slot)
	})
}

func TestRescheduleBooking(t *testing.T) {
	t.Run("owner moves the slot", func(t *testing.T) {
		f := newFixture()
		created, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)
		bookingID := created.Appointment.BookingID

		booking, err := f.usecase.RescheduleBooking(context.Background(), bookingID, &requests.RescheduleBookingRequest{
			Patient:         f.patientID,
			DoctorID:        f.doctorID,
			EstablishmentID: f.establishment,
			StartTime:       "2026-03-02T11:00:00Z",
			Duration:        45,
		}, "UTC")
		assert.NoError(t, err)
		assert.Equal(t, "11:00 - 11:45,2026-03-02", booking.Slot)
		assert.Equal(t, 45, booking.Duration)
		assert.Equal(t, 1, f.dispatcher.rescheduled)
		assert.Equal(t, "09:00 - 09:30,2026-03-02", f.dispatcher.lastOldSlot)
		assert.Len(t, f.timelineRepo.entries, 2)
	})

	t.Run("non owner is forbidden", func(t *testing.T) {
		f := newFixture()
		created, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)

		_, err = f.usecase.RescheduleBooking(context.Background(), created.Appointment.BookingID, &requests.RescheduleBookingRequest{
			Patient:         primitive.NewObjectID().Hex(),
			DoctorID:        f.doctorID,
			EstablishmentID: f.establishment,
			StartTime:       "2026-03-02T11:00:00Z",
			Duration:        30,
		}, "UTC")
		assert.Error(t, err)
		assert.Equal(t, 403, statusCodeOf(t, err))
	})

	t.Run("moving onto another booking conflicts", func(t *testing.T) {
		f := newFixture()
		first, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)
		_, err = f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T10:00:00Z", 30), "UTC")
		assert.NoError(t, err)

		_, err = f.usecase.RescheduleBooking(context.Background(), first.Appointment.BookingID, &requests.RescheduleBookingRequest{
			Patient:         f.patientID,
			DoctorID:        f.doctorID,
			EstablishmentID: f.establishment,
			StartTime:       "2026-03-02T10:15:00Z",
			Duration:        30,
		}, "UTC")
		assert.Error(t, err)
		assert.Equal(t, 409, statusCodeOf(t, err))
	})

	t.Run("overlap with itself is ignored", func(t *testing.T) {
		f := newFixture()
		created, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)

		booking, err := f.usecase.RescheduleBooking(context.Background(), created.Appointment.BookingID, &requests.RescheduleBookingRequest{
			Patient:         f.patientID,
			DoctorID:        f.doctorID,
			EstablishmentID: f.establishment,
			StartTime:       "2026-03-02T09:15:00Z",
			Duration:        30,
		}, "UTC")
		assert.NoError(t, err)
		assert.Equal(t, "09:15 - 09:45,2026-03-02", booking.Slot)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.RescheduleBooking(context.Background(), "2026-0-9999", &requests.RescheduleBookingRequest{
			Patient:         f.patientID,
			DoctorID:        f.doctorID,
			EstablishmentID: f.establishment,
			StartTime:       "2026-03-02T09:00:00Z",
			Duration:        30,
		}, "UTC")
		assert.Error(t, err)
		assert.Equal(t, 404, statusCodeOf(t, err))
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("cancel soft deletes and notifies", func(t *testing.T) {
		f := newFixture()
		created, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)
		bookingID := created.Appointment.BookingID

		booking, err := f.usecase.CancelBooking(context.Background(), bookingID, "UTC")
		assert.NoError(t, err)
		assert.Equal(t, constvars.BookingStatusCancelled, booking.Status)
		assert.True(t, booking.Deleted)
		assert.Equal(t, 1, f.dispatcher.cancelled)
		assert.Len(t, f.timelineRepo.entries, 2)
	})

	t.Run("second cancel reports not found", func(t *testing.T) {
		f := newFixture()
		created, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)
		bookingID := created.Appointment.BookingID

		_, err = f.usecase.CancelBooking(context.Background(), bookingID, "UTC")
		assert.NoError(t, err)

		_, err = f.usecase.CancelBooking(context.Background(), bookingID, "UTC")
		assert.Error(t, err)
		assert.Equal(t, 404, statusCodeOf(t, err))
	})
}

func TestFindBookings(t *testing.T) {
	t.Run("detail returns order and timelines", func(t *testing.T) {
		f := newFixture()
		created, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)
		bookingID := created.Appointment.BookingID

		detail, err := f.usecase.FindBookingDetail(context.Background(), bookingID)
		assert.NoError(t, err)
		assert.Equal(t, bookingID, detail.Appointment.BookingID)
		assert.NotNil(t, detail.RelatedOrder)
		assert.Len(t, detail.RelatedTimelines, 1)
	})

	t.Run("detail for unknown booking", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.FindBookingDetail(context.Background(), "2026-0-9999")
		assert.Error(t, err)
		assert.Equal(t, 404, statusCodeOf(t, err))
	})

	t.Run("user listing matches patient or doctor", func(t *testing.T) {
		f := newFixture()
		_, err := f.usecase.CreateBooking(context.Background(),
			f.createRequest("2026-03-02T09:00:00Z", 30), "UTC")
		assert.NoError(t, err)

		asPatient, total, err := f.usecase.FindBookingsByUser(context.Background(), f.patientID, requests.Pagination{Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, asPatient, 1)

		asDoctor, total, err := f.usecase.FindBookingsByUser(context.Background(), f.doctorID, requests.Pagination{Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, asDoctor, 1)

		nobody, total, err := f.usecase.FindBookingsByUser(context.Background(), primitive.NewObjectID().Hex(), requests.Pagination{Page: 1, PageSize: 10})
		assert.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Len(t, nobody, 0)
	})
}
