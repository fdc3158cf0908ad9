package app

import (
	"errors"
	"net/http"

	"github.com/showseat/booking-api/api"
	"github.com/showseat/booking-api/internal/domain"
)

// GetShowAvailability implements GET /shows/{showId}/availability. The read
// path takes no locks: it reflects committed bookings only, so an in-flight
// reservation is invisible until it commits.
func (app *Application) GetShowAvailability(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readIDParam(r, "showId")
	if err != nil {
		app.notFoundResponseWithMessage(w, r, "show not found")
		return
	}

	availability, err := app.bookingRepo.GetAvailabilityByShowId(r.Context(), showID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShowNotFound):
			app.notFoundResponseWithMessage(w, r, "show not found")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := toAvailabilityResponse(availability)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toAvailabilityResponse(availability *domain.ShowAvailability) api.AvailabilityResponse {
	return api.AvailabilityResponse{
		ShowId:      availability.ShowID,
		TotalSeats:  availability.TotalSeats,
		BookedSeats: availability.BookedSeats,
		Available:   availability.Available,
	}
}
