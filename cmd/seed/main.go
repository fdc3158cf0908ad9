// Command seed loads a handful of demo movies and shows so the API can be
// exercised locally without hand-inserting catalog rows.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
)

type show struct {
	screenName string
	startIn    time.Duration
	totalSeats int
	basePrice  float64
}

type movie struct {
	title           string
	description     string
	durationMinutes int
	posterUrl       string
	shows           []show
}

var demoMovies = []movie{
	{
		title:           "Inception",
		description:     "A thief who steals corporate secrets through dream-sharing technology.",
		durationMinutes: 148,
		posterUrl:       "https://posters.showseat.example/inception.jpg",
		shows: []show{
			{screenName: "Screen 1", startIn: 24 * time.Hour, totalSeats: 10, basePrice: 12.50},
			{screenName: "Screen 2", startIn: 48 * time.Hour, totalSeats: 8, basePrice: 11.00},
		},
	},
	{
		title:           "Interstellar",
		description:     "A team of explorers travel through a wormhole in space.",
		durationMinutes: 169,
		posterUrl:       "https://posters.showseat.example/interstellar.jpg",
		shows: []show{
			{screenName: "Screen 1", startIn: 72 * time.Hour, totalSeats: 12, basePrice: 13.00},
		},
	},
}

func main() {
	var dsn string
	flag.StringVar(&dsn, "db-dsn", "", "PostgreSQL DSN")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		logger.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	err = seed(ctx, conn)
	if err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seeded demo movies and shows")
}

func seed(ctx context.Context, conn *pgx.Conn) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, m := range demoMovies {
		var movieID int

		err := tx.QueryRow(ctx,
			`INSERT INTO movies (title, description, duration_minutes, poster_url, release_date)
			 VALUES ($1, $2, $3, $4, now()) RETURNING id`,
			m.title, m.description, m.durationMinutes, m.posterUrl,
		).Scan(&movieID)
		if err != nil {
			return err
		}

		for _, s := range m.shows {
			_, err := tx.Exec(ctx,
				`INSERT INTO shows (movie_id, screen_name, start_time, total_seats, base_price)
				 VALUES ($1, $2, $3, $4, $5)`,
				movieID, s.screenName, time.Now().Add(s.startIn), s.totalSeats, s.basePrice,
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}
