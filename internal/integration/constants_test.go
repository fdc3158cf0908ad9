package integration_test

const (
	// User related constants
	TestUserName     = "John Doe"
	TestUserEmail    = "test@example.com"
	TestUserPassword = "Test123!@#"

	// Catalog related constants
	TestMovieTitle      = "Inception"
	TestShowId          = 1
	TestShowTotalSeats  = 10
	TestSmallShowId     = 2
	TestSmallShowSeats  = 3
	TestMissingShowId   = 999
	TestMissingMovieId  = 999
	TestMissingBookingId = 999
)
