// Package api defines the request and response types of the public HTTP
// surface. Error envelopes carry the request id so log lines and client
// reports can be correlated.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type GetMoviesParams struct {
	Page     *int    `validate:"omitempty,gte=1"`
	PageSize *int    `validate:"omitempty,gte=1,lte=100"`
	Term     *string `validate:"omitempty,max=100"`
}

type MovieSummary struct {
	Id              int      `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes"`
	PosterUrl       string   `json:"poster_url"`
	Rating          *float64 `json:"rating,omitempty"`
}

type MovieListResponse struct {
	Movies   []MovieSummary `json:"movies"`
	Metadata Metadata       `json:"metadata"`
}

type ShowSummary struct {
	Id         int             `json:"id"`
	MovieId    int             `json:"movie_id"`
	MovieTitle string          `json:"movie_title"`
	ScreenName string          `json:"screen_name"`
	StartTime  time.Time       `json:"start_time"`
	TotalSeats int             `json:"total_seats"`
	BasePrice  decimal.Decimal `json:"base_price"`
}

type ShowListResponse struct {
	Shows []ShowSummary `json:"shows"`
}

// ReserveSeatRequest keeps SeatNumber as a pointer so a missing field and an
// explicit zero can be told apart during validation.
type ReserveSeatRequest struct {
	SeatNumber *int `json:"seat_number"`
}

type AvailabilityResponse struct {
	ShowId      int   `json:"show_id"`
	TotalSeats  int   `json:"total_seats"`
	BookedSeats []int `json:"booked_seats"`
	Available   int   `json:"available"`
}

type BookingResponse struct {
	Id           int                  `json:"id"`
	Reference    string               `json:"reference"`
	ShowId       int                  `json:"show_id"`
	SeatNumber   int                  `json:"seat_number"`
	Status       string               `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	Availability AvailabilityResponse `json:"availability"`
}

type CancelBookingResponse struct {
	Detail string `json:"detail"`
}

type GetBookingsParams struct {
	Page     *int `validate:"omitempty,gte=1"`
	PageSize *int `validate:"omitempty,gte=1,lte=100"`
}

type BookingSummary struct {
	Id         int       `json:"id"`
	Reference  string    `json:"reference"`
	MovieTitle string    `json:"movie_title"`
	ScreenName string    `json:"screen_name"`
	ShowTime   time.Time `json:"show_time"`
	SeatNumber int       `json:"seat_number"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookingListResponse struct {
	Bookings []BookingSummary `json:"bookings"`
	Metadata Metadata         `json:"metadata"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}
