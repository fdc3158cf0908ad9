package domain

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Movie struct {
	ID              int
	Title           string
	Description     string
	DurationMinutes int
	PosterUrl       string
	ReleaseDate     time.Time
	Rating          pgtype.Numeric
}

type MovieFilters struct {
	Pagination
	Term string
}

type MovieRepository interface {
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
}
