package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"psymate-service/internal/app/models"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/dto/requests"
	"psymate-service/internal/pkg/dto/responses"
	"psymate-service/internal/pkg/exceptions"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeBookingUsecase struct {
	createResponse *responses.CreatedBooking
	createErr      error
	createTimezone string

	rescheduleBooking *models.Booking
	rescheduleErr     error
	rescheduleID      string

	cancelBooking *models.Booking
	cancelErr     error
	cancelID      string

	detail    *responses.BookingDetail
	detailErr error

	userBookings []models.Booking
	allBookings  []models.Booking
}

func (f *fakeBookingUsecase) CreateBooking(ctx context.Context, request *requests.CreateBookingRequest, timezone string) (*responses.CreatedBooking, error) {
	f.createTimezone = timezone
	return f.createResponse, f.createErr
}

func (f *fakeBookingUsecase) RescheduleBooking(ctx context.Context, bookingID string, request *requests.RescheduleBookingRequest, timezone string) (*models.Booking, error) {
	f.rescheduleID = bookingID
	return f.rescheduleBooking, f.rescheduleErr
}

func (f *fakeBookingUsecase) CancelBooking(ctx context.Context, bookingID string, timezone string) (*models.Booking, error) {
	f.cancelID = bookingID
	return f.cancelBooking, f.cancelErr
}

func (f *fakeBookingUsecase) FindBookingDetail(ctx context.Context, bookingID string) (*responses.BookingDetail, error) {
	return f.detail, f.detailErr
}

func (f *fakeBookingUsecase) FindBookingsByUser(ctx context.Context, userID string, pagination requests.Pagination) ([]models.Booking, int, error) {
	return f.userBookings, len(f.userBookings), nil
}

func (f *fakeBookingUsecase) FindAllBookings(ctx context.Context, pagination requests.Pagination) ([]models.Booking, int, error) {
	return f.allBookings, len(f.allBookings), nil
}

func newTestRouter(usecase *fakeBookingUsecase) *chi.Mux {
	controller := NewBookingController(zap.NewNop(), usecase)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), constvars.CONTEXT_REQUEST_ID_KEY, "test-request-id")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	router.Get("/booking", controller.FindBookings)
	router.Post("/booking", controller.CreateBooking)
	router.Put("/booking/{appointmentId}", controller.RescheduleBooking)
	router.Delete("/booking", controller.CancelBooking)
	return router
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) responses.ResponseDTO {
	t.Helper()
	var envelope responses.ResponseDTO
	assert.NoError(t, json.NewDecoder(recorder.Body).Decode(&envelope))
	return envelope
}

func createBookingBody() string {
	return `{
		"patient": "65f000000000000000000001",
		"doctorId": "65f000000000000000000002",
		"establishmentId": "65f000000000000000000003",
		"startTime": "2026-03-02T09:00:00Z",
		"duration": 30,
		"payment": [{"amtPaid": 1500}]
	}`
}

func TestBookingControllerCreate(t *testing.T) {
	t.Run("returns the created appointment and order", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			createResponse: &responses.CreatedBooking{
				Appointment: &models.Booking{BookingID: "2026-2-0001", Status: constvars.BookingStatusConfirmed},
				Order:       &models.Order{InvoiceID: "2026-2-0001"},
			},
		}
		router := newTestRouter(usecase)

		request := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(createBookingBody()))
		request.Header.Set(constvars.HeaderTimezone, "Asia/Kolkata")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.True(t, envelope.Success)
		assert.Equal(t, constvars.CreateBookingSuccessMessage, envelope.Message)
		assert.Equal(t, "Asia/Kolkata", usecase.createTimezone)
	})

	t.Run("defaults the timezone when the header is absent", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			createResponse: &responses.CreatedBooking{
				Appointment: &models.Booking{BookingID: "2026-2-0001"},
				Order:       &models.Order{},
			},
		}
		router := newTestRouter(usecase)

		request := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(createBookingBody()))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, constvars.DefaultTimezone, usecase.createTimezone)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		router := newTestRouter(&fakeBookingUsecase{})

		request := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader("{not json"))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects a body missing required fields", func(t *testing.T) {
		router := newTestRouter(&fakeBookingUsecase{})

		request := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(`{"patient": "65f000000000000000000001"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("propagates conflict errors from the usecase", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			createErr: exceptions.ErrSlotConflict(fmt.Errorf("overlaps"), "09:00 - 09:30,2026-03-02", "Asha Rao"),
		}
		router := newTestRouter(usecase)

		request := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(createBookingBody()))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("fails when the request id middleware is missing", func(t *testing.T) {
		controller := NewBookingController(zap.NewNop(), &fakeBookingUsecase{})
		router := chi.NewRouter()
		router.Post("/booking", controller.CreateBooking)

		request := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(createBookingBody()))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

func TestBookingControllerFind(t *testing.T) {
	t.Run("appointmentId query returns the detail view", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			detail: &responses.BookingDetail{
				Appointment: &models.Booking{BookingID: "2026-2-0001"},
			},
		}
		router := newTestRouter(usecase)

		request := httptest.NewRequest(http.MethodGet, "/booking?appointmentId=2026-2-0001", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, constvars.GetBookingDetailSuccessMessage, envelope.Message)
	})

	t.Run("unknown appointmentId returns not found", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			detailErr: exceptions.ErrBookingNotFound(fmt.Errorf("appointment missing")),
		}
		router := newTestRouter(usecase)

		request := httptest.NewRequest(http.MethodGet, "/booking?appointmentId=2026-0-9999", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("userId query with no appointments uses the empty message", func(t *testing.T) {
		router := newTestRouter(&fakeBookingUsecase{})

		request := httptest.NewRequest(http.MethodGet, "/booking?userId=65f000000000000000000001", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.True(t, envelope.Success)
		assert.Equal(t, constvars.NoBookingsForUserMessage, envelope.Message)
	})

	t.Run("unfiltered listing carries pagination", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			allBookings: []models.Booking{{BookingID: "2026-2-0001"}, {BookingID: "2026-2-0002"}},
		}
		router := newTestRouter(usecase)

		request := httptest.NewRequest(http.MethodGet, "/booking?page=1&page_size=10", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		envelope := decodeEnvelope(t, recorder)
		assert.NotNil(t, envelope.Pagination)
		assert.Equal(t, 2, envelope.Pagination.Total)
		assert.Equal(t, 1, envelope.Pagination.Page)
	})
}

func TestBookingControllerReschedule(t *testing.T) {
	t.Run("passes the path id through", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			rescheduleBooking: &models.Booking{BookingID: "2026-2-0001", Slot: "11:00 - 11:30,2026-03-02"},
		}
		router := newTestRouter(usecase)

		body := `{
			"patient": "65f000000000000000000001",
			"doctorId": "65f000000000000000000002",
			"establishmentId": "65f000000000000000000003",
			"startTime": "2026-03-02T11:00:00Z",
			"duration": 30
		}`
		request := httptest.NewRequest(http.MethodPut, "/booking/2026-2-0001", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "2026-2-0001", usecase.rescheduleID)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, constvars.RescheduleBookingSuccessMessage, envelope.Message)
	})

	t.Run("propagates ownership errors", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			rescheduleErr: exceptions.ErrRescheduleNotOwner(fmt.Errorf("not the booking owner")),
		}
		router := newTestRouter(usecase)

		body := `{
			"patient": "65f000000000000000000009",
			"doctorId": "65f000000000000000000002",
			"establishmentId": "65f000000000000000000003",
			"startTime": "2026-03-02T11:00:00Z",
			"duration": 30
		}`
		request := httptest.NewRequest(http.MethodPut, "/booking/2026-2-0001", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})
}

func TestBookingControllerCancel(t *testing.T) {
	t.Run("cancels by query id", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			cancelBooking: &models.Booking{BookingID: "2026-2-0001", Status: constvars.BookingStatusCancelled},
		}
		router := newTestRouter(usecase)

		request := httptest.NewRequest(http.MethodDelete, "/booking?id=2026-2-0001", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "2026-2-0001", usecase.cancelID)
		envelope := decodeEnvelope(t, recorder)
		assert.Equal(t, constvars.CancelBookingSuccessMessage, envelope.Message)
	})

	t.Run("cancels by body id", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			cancelBooking: &models.Booking{BookingID: "2026-2-0002", Status: constvars.BookingStatusCancelled},
		}
		router := newTestRouter(usecase)

		request := httptest.NewRequest(http.MethodDelete, "/booking", strings.NewReader(`{"id": "2026-2-0002"}`))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "2026-2-0002", usecase.cancelID)
	})

	t.Run("missing id is rejected", func(t *testing.T) {
		router := newTestRouter(&fakeBookingUsecase{})

		request := httptest.NewRequest(http.MethodDelete, "/booking", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("cancelling twice returns not found", func(t *testing.T) {
		usecase := &fakeBookingUsecase{
			cancelErr: exceptions.ErrBookingNotFoundOrCancelled(fmt.Errorf("already cancelled")),
		}
		router := newTestRouter(usecase)

		request := httptest.NewRequest(http.MethodDelete, "/booking?id=2026-2-0001", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
