package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrUserAlreadyExists = errors.New("user already exists")

	ErrShowNotFound            = errors.New("show not found")
	ErrInvalidSeatNumber       = errors.New("invalid seat number")
	ErrSeatAlreadyBooked       = errors.New("seat already booked")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingAlreadyCancelled = errors.New("booking already cancelled")

	// ErrLockContention indicates that the row lock on the contended show or
	// booking could not be acquired within the transaction's lock_timeout.
	// The request is safe to retry as-is.
	ErrLockContention = errors.New("timed out waiting for seat lock")
)
