package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/showseat/booking-api/api"
	"github.com/showseat/booking-api/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// ReserveSeat implements POST /shows/{showId}/bookings. Input checks run in a
// fixed order and the first failure wins: missing seat_number, non-integer
// seat_number, unknown show, out-of-range seat, seat taken. The last three
// are enforced by the repository inside its locking transaction.
func (app *Application) ReserveSeat(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showID, err := app.readIDParam(r, "showId")
	if err != nil {
		app.notFoundResponseWithMessage(w, r, "show not found")
		return
	}

	seatNumber, err := app.readSeatNumber(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userID := app.contextGetUserId(r)

	booking, err := app.bookingRepo.Reserve(r.Context(), showID, seatNumber, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShowNotFound):
			app.notFoundResponseWithMessage(w, r, "show not found")
		case errors.Is(err, domain.ErrInvalidSeatNumber):
			app.badRequestResponse(w, r, fmt.Errorf("invalid seat number"))
		case errors.Is(err, domain.ErrSeatAlreadyBooked):
			app.metrics.seatConflicts.Add(r.Context(), 1)
			logger.Info("seat conflict", "show_id", showID, "seat_number", seatNumber)
			app.conflictResponse(w, r, "seat already booked")
		case errors.Is(err, domain.ErrLockContention):
			logger.Warn("lock contention during reserve", "show_id", showID, "seat_number", seatNumber)
			app.contentionResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.bookingsCreated.Add(r.Context(), 1)
	logger.Info("seat reserved", "booking_id", booking.ID, "show_id", showID, "seat_number", seatNumber)

	availability, err := app.bookingRepo.GetAvailabilityByShowId(r.Context(), showID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.sendBookingConfirmation(r, booking)

	resp := toBookingResponse(booking, availability)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// readSeatNumber decodes the reservation body, distinguishing an absent
// seat_number from one that is not an integer.
func (app *Application) readSeatNumber(r *http.Request) (int, error) {
	var input api.ReserveSeatRequest

	dec := json.NewDecoder(r.Body)

	err := dec.Decode(&input)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("seat_number required")
		}

		var unmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &unmarshalTypeError) && unmarshalTypeError.Field == "seat_number" {
			return 0, fmt.Errorf("seat_number must be an integer")
		}

		return 0, fmt.Errorf("seat_number must be an integer")
	}

	if input.SeatNumber == nil {
		return 0, fmt.Errorf("seat_number required")
	}

	return *input.SeatNumber, nil
}

func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	bookingID, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.notFoundResponseWithMessage(w, r, "booking not found")
		return
	}

	userID := app.contextGetUserId(r)

	err = app.bookingRepo.Cancel(r.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			// A booking owned by someone else gets the same answer as a
			// missing one, so booking ids cannot be probed for ownership.
			app.notFoundResponseWithMessage(w, r, "booking not found")
		case errors.Is(err, domain.ErrBookingAlreadyCancelled):
			app.badRequestResponse(w, r, fmt.Errorf("booking already cancelled"))
		case errors.Is(err, domain.ErrLockContention):
			logger.Warn("lock contention during cancel", "booking_id", bookingID)
			app.contentionResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.bookingsCancelled.Add(r.Context(), 1)
	logger.Info("booking cancelled", "booking_id", bookingID)

	resp := api.CancelBookingResponse{Detail: "booking cancelled"}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	params := api.GetBookingsParams{
		Page:     app.readIntQuery(r, "page"),
		PageSize: app.readIntQuery(r, "pageSize"),
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := domain.Pagination{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if params.Page != nil {
		pagination.Page = *params.Page
	}
	if params.PageSize != nil {
		pagination.PageSize = *params.PageSize
	}

	userID := app.contextGetUserId(r)

	bookings, metadata, err := app.bookingRepo.GetSummariesByUserId(r.Context(), userID, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{
		Bookings: toBookingSummaries(bookings),
		Metadata: toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendBookingConfirmation(r *http.Request, booking *domain.Booking) {
	logger := app.contextGetLogger(r)
	userID := app.contextGetUserId(r)

	// The email outlives the request, so detach from its cancellation while
	// keeping trace propagation.
	ctx := context.WithoutCancel(r.Context())

	app.background(func() {
		user, err := app.userRepo.GetById(ctx, userID)
		if err != nil {
			logger.Error("failed to load user for confirmation email", "error", err)
			return
		}

		show, err := app.showRepo.GetById(ctx, booking.ShowID)
		if err != nil {
			logger.Error("failed to load show for confirmation email", "error", err)
			return
		}

		data := map[string]any{
			"name":       user.Name,
			"reference":  booking.Reference,
			"movieTitle": show.MovieTitle,
			"screenName": show.ScreenName,
			"showTime":   show.StartTime.Format("2006-01-02 15:04"),
			"seatNumber": booking.SeatNumber,
		}

		err = app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
		if err != nil {
			logger.Error("failed to send booking confirmation email", "error", err)
		}
	})
}

func toBookingResponse(booking *domain.Booking, availability *domain.ShowAvailability) api.BookingResponse {
	return api.BookingResponse{
		Id:           booking.ID,
		Reference:    booking.Reference,
		ShowId:       booking.ShowID,
		SeatNumber:   booking.SeatNumber,
		Status:       string(booking.Status),
		CreatedAt:    booking.CreatedAt,
		Availability: toAvailabilityResponse(availability),
	}
}

func toBookingSummaries(bookings []domain.BookingSummary) []api.BookingSummary {
	summaries := make([]api.BookingSummary, len(bookings))

	for i, v := range bookings {
		summaries[i] = api.BookingSummary{
			Id:         v.BookingID,
			Reference:  v.Reference,
			MovieTitle: v.MovieTitle,
			ScreenName: v.ScreenName,
			ShowTime:   v.ShowTime,
			SeatNumber: v.SeatNumber,
			Status:     string(v.Status),
			CreatedAt:  v.CreatedAt,
		}
	}

	return summaries
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
