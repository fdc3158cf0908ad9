package domain

import (
	"context"
	"time"
)

// Show is a scheduled screening with a fixed seat count. TotalSeats is set
// at creation and never changes afterwards; the reservation engine treats
// the whole struct as read-only.
type Show struct {
	ID         int
	MovieID    int
	MovieTitle string
	ScreenName string
	StartTime  time.Time
	TotalSeats int
	BasePrice  float64
}

type ShowRepository interface {
	GetAllByMovieId(ctx context.Context, movieID int) ([]Show, error)
	GetById(ctx context.Context, id int) (*Show, error)
}
