package controllers

import (
	"context"
	"net/http"
	"psymate-service/internal/app/contracts"
	"psymate-service/internal/pkg/constvars"
	"psymate-service/internal/pkg/dto/requests"
	"psymate-service/internal/pkg/exceptions"
	"psymate-service/internal/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type BookingController struct {
	Log            *zap.Logger
	BookingUsecase contracts.BookingUsecase
}

func NewBookingController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase) *BookingController {
	return &BookingController{
		Log:            logger,
		BookingUsecase: bookingUsecase,
	}
}

// FindBookings serves three query shapes: ?appointmentId= returns one
// appointment with its order and timelines, ?userId= lists appointments where
// the user is patient or doctor, and no filter lists everything.
func (ctrl *BookingController) FindBookings(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("BookingController.FindBookings requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctrl.Log.Info("BookingController.FindBookings called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	appointmentID := r.URL.Query().Get("appointmentId")
	if appointmentID != "" {
		detail, err := ctrl.BookingUsecase.FindBookingDetail(ctx, appointmentID)
		if err != nil {
			ctrl.Log.Error("BookingController.FindBookings BookingUsecase.FindBookingDetail error",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err))

			if err == context.DeadlineExceeded {
				utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
				return
			}
			utils.BuildErrorResponse(ctrl.Log, w, err)
			return
		}

		ctrl.Log.Info("BookingController.FindBookings succeeded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBookingIDKey, appointmentID))
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetBookingDetailSuccessMessage, detail)
		return
	}

	pagination := utils.BuildPaginationRequest(r)
	userID := r.URL.Query().Get("userId")

	var (
		bookings interface{}
		total    int
		err      error
	)
	if userID != "" {
		bookings, total, err = ctrl.BookingUsecase.FindBookingsByUser(ctx, userID, *pagination)
	} else {
		bookings, total, err = ctrl.BookingUsecase.FindAllBookings(ctx, *pagination)
	}
	if err != nil {
		ctrl.Log.Error("BookingController.FindBookings error listing appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	message := constvars.GetBookingSuccessMessage
	if userID != "" && total == 0 {
		message = constvars.NoBookingsForUserMessage
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	ctrl.Log.Info("BookingController.FindBookings succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, total))
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, message, paginationResponse, bookings)
}

func (ctrl *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("BookingController.CreateBooking requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	ctrl.Log.Info("BookingController.CreateBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID))

	var request requests.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("BookingController.CreateBooking cannot parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(&request); err != nil {
		ctrl.Log.Error("BookingController.CreateBooking validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	timezone := utils.RequestTimezone(r)
	response, err := ctrl.BookingUsecase.CreateBooking(ctx, &request, timezone)
	if err != nil {
		ctrl.Log.Error("BookingController.CreateBooking BookingUsecase.CreateBooking error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("BookingController.CreateBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, response.Appointment.BookingID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CreateBookingSuccessMessage, response)
}

func (ctrl *BookingController) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("BookingController.RescheduleBooking requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	bookingID := chi.URLParam(r, "appointmentId")
	ctrl.Log.Info("BookingController.RescheduleBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID))

	var request requests.RescheduleBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("BookingController.RescheduleBooking cannot parse request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(&request); err != nil {
		ctrl.Log.Error("BookingController.RescheduleBooking validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	timezone := utils.RequestTimezone(r)
	booking, err := ctrl.BookingUsecase.RescheduleBooking(ctx, bookingID, &request, timezone)
	if err != nil {
		ctrl.Log.Error("BookingController.RescheduleBooking BookingUsecase.RescheduleBooking error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("BookingController.RescheduleBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.String(constvars.LoggingSlotKey, booking.Slot))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RescheduleBookingSuccessMessage, booking)
}

func (ctrl *BookingController) CancelBooking(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("BookingController.CancelBooking requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	// The booking id arrives in the query or the body, never the path.
	bookingID := r.URL.Query().Get("id")
	if bookingID == "" && r.Body != nil {
		var request requests.CancelBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err == nil {
			bookingID = request.ID
		}
	}
	if bookingID == "" {
		ctrl.Log.Error("BookingController.CancelBooking missing booking id",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingBookingID(nil))
		return
	}

	ctrl.Log.Info("BookingController.CancelBooking called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	timezone := utils.RequestTimezone(r)
	booking, err := ctrl.BookingUsecase.CancelBooking(ctx, bookingID, timezone)
	if err != nil {
		ctrl.Log.Error("BookingController.CancelBooking BookingUsecase.CancelBooking error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("BookingController.CancelBooking succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelBookingSuccessMessage, booking)
}
