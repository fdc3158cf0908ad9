package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showseat/booking-api/internal/domain"
)

type PostgresShowRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowRepository(db *pgxpool.Pool) *PostgresShowRepository {
	return &PostgresShowRepository{
		db: db,
	}
}

func (p *PostgresShowRepository) GetAllByMovieId(ctx context.Context, movieID int) ([]domain.Show, error) {
	query := `
		SELECT s.id, s.movie_id, m.title, s.screen_name, s.start_time, s.total_seats, s.base_price
		FROM shows s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.movie_id = $1
		ORDER BY s.start_time
	`

	rows, err := p.db.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shows := make([]domain.Show, 0)

	for rows.Next() {
		var show domain.Show

		err := rows.Scan(
			&show.ID,
			&show.MovieID,
			&show.MovieTitle,
			&show.ScreenName,
			&show.StartTime,
			&show.TotalSeats,
			&show.BasePrice,
		)
		if err != nil {
			return nil, err
		}

		shows = append(shows, show)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shows, nil
}

func (p *PostgresShowRepository) GetById(ctx context.Context, id int) (*domain.Show, error) {
	query := `
		SELECT s.id, s.movie_id, m.title, s.screen_name, s.start_time, s.total_seats, s.base_price
		FROM shows s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.id = $1
	`

	var show domain.Show

	err := p.db.QueryRow(ctx, query, id).Scan(
		&show.ID,
		&show.MovieID,
		&show.MovieTitle,
		&show.ScreenName,
		&show.StartTime,
		&show.TotalSeats,
		&show.BasePrice,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShowNotFound
		}

		return nil, err
	}

	return &show, nil
}
