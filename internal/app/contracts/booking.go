package contracts

import (
	"context"
	"time"

	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/dto/requests"
	"psymate-service/internal/pkg/dto/responses"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	FindByBookingID(ctx context.Context, bookingID string) (*models.Booking, error)
	FindActiveByBookingID(ctx context.Context, bookingID string) (*models.Booking, error)
	// FindOverlapping returns the first active booking for the doctor at the
	// establishment whose window intersects [start, end). excludeBookingID is
	// ignored when empty.
	FindOverlapping(ctx context.Context, doctorID, establishmentID string, start, end time.Time, excludeBookingID string) (*models.Booking, error)
	FindByUser(ctx context.Context, userID string, pagination requests.Pagination) ([]models.Booking, int, error)
	FindAll(ctx context.Context, pagination requests.Pagination) ([]models.Booking, int, error)
	UpdateSlot(ctx context.Context, booking *models.Booking) error
	CancelByBookingID(ctx context.Context, bookingID string) (*models.Booking, error)
}

type BookingUsecase interface {
	CreateBooking(ctx context.Context, request *requests.CreateBookingRequest, timezone string) (*responses.CreatedBooking, error)
	RescheduleBooking(ctx context.Context, bookingID string, request *requests.RescheduleBookingRequest, timezone string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string, timezone string) (*models.Booking, error)
	FindBookingDetail(ctx context.Context, bookingID string) (*responses.BookingDetail, error)
	FindBookingsByUser(ctx context.Context, userID string, pagination requests.Pagination) ([]models.Booking, int, error)
	FindAllBookings(ctx context.Context, pagination requests.Pagination) ([]models.Booking, int, error)
}
