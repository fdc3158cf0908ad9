package domain

import (
	"context"
	"time"
)

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking holds one seat of one show for one user. A cancelled booking is
// terminal; re-booking the seat creates a new record rather than reviving
// the old one, so the bookings table doubles as an audit trail.
type Booking struct {
	ID         int
	Reference  string
	UserID     int
	ShowID     int
	SeatNumber int
	Status     BookingStatus
	CreatedAt  time.Time
}

type BookingSummary struct {
	BookingID  int
	Reference  string
	MovieTitle string
	ScreenName string
	ShowTime   time.Time
	SeatNumber int
	Status     BookingStatus
	CreatedAt  time.Time
}

type ShowAvailability struct {
	ShowID      int
	TotalSeats  int
	BookedSeats []int
	Available   int
}

// BookingRepository is the reservation engine's store. Reserve and Cancel run
// their check-then-write sequences inside a single transaction holding a row
// lock on the contended show or booking, so at most one booked row per
// (show, seat) can ever exist regardless of how many requests race.
type BookingRepository interface {
	// Reserve creates a booked row for (showID, seatNumber) owned by userID.
	// It returns ErrShowNotFound, ErrInvalidSeatNumber, ErrSeatAlreadyBooked
	// or ErrLockContention; validation order follows that listing.
	Reserve(ctx context.Context, showID, seatNumber, userID int) (*Booking, error)

	// Cancel transitions the booking to cancelled. A booking that does not
	// exist and a booking owned by someone else are both ErrBookingNotFound.
	Cancel(ctx context.Context, bookingID, userID int) error

	// GetAvailabilityByShowId reports committed booked seats in ascending
	// order. It never blocks on writers.
	GetAvailabilityByShowId(ctx context.Context, showID int) (*ShowAvailability, error)

	GetSummariesByUserId(ctx context.Context, userID int, pagination Pagination) ([]BookingSummary, *Metadata, error)
}
