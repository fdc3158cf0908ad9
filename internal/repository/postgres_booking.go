package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/showseat/booking-api/internal/domain"
)

// lockTimeout bounds how long a transaction waits on the show or booking row
// lock before the operation fails with domain.ErrLockContention.
const lockTimeout = "3s"

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Reserve runs the whole check-then-insert sequence in one transaction while
// holding a row lock on the show, so two racing reservations for the same
// seat serialize: the second waits on the lock, re-reads after the first
// commits, and observes the conflict. The partial unique index on
// (show_id, seat_number) WHERE status = 'booked' backstops the same invariant
// at the storage level.
func (p *PostgresBookingRepository) Reserve(ctx context.Context, showID, seatNumber, userID int) (*domain.Booking, error) {
	booking := domain.Booking{
		UserID:     userID,
		ShowID:     showID,
		SeatNumber: seatNumber,
		Status:     domain.BookingStatusBooked,
	}

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var totalSeats int

		query := `SELECT total_seats FROM shows WHERE id = $1 FOR UPDATE`

		err := tx.QueryRow(ctx, query, showID).Scan(&totalSeats)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrShowNotFound
			}

			return err
		}

		if seatNumber < 1 || seatNumber > totalSeats {
			return domain.ErrInvalidSeatNumber
		}

		var existingID int

		query = `
			SELECT id FROM bookings
			WHERE show_id = $1 AND seat_number = $2 AND status = 'booked'
			FOR UPDATE
		`

		err = tx.QueryRow(ctx, query, showID, seatNumber).Scan(&existingID)
		if err == nil {
			return domain.ErrSeatAlreadyBooked
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		booking.Reference = uuid.NewString()

		query = `
			INSERT INTO bookings (reference, user_id, show_id, seat_number, status)
			VALUES ($1, $2, $3, $4, 'booked')
			RETURNING id, created_at
		`

		err = tx.QueryRow(ctx, query, booking.Reference, userID, showID, seatNumber).
			Scan(&booking.ID, &booking.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrSeatAlreadyBooked
			}

			return err
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// Cancel flips the booking to cancelled. The row lock makes a concurrent
// double-cancel deterministic: the loser re-reads the committed cancelled
// status and fails with ErrBookingAlreadyCancelled. Lookup is scoped to the
// owner, so a foreign booking id is indistinguishable from a missing one.
func (p *PostgresBookingRepository) Cancel(ctx context.Context, bookingID, userID int) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		var status domain.BookingStatus

		query := `SELECT status FROM bookings WHERE id = $1 AND user_id = $2 FOR UPDATE`

		err := tx.QueryRow(ctx, query, bookingID, userID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrBookingNotFound
			}

			return err
		}

		if status == domain.BookingStatusCancelled {
			return domain.ErrBookingAlreadyCancelled
		}

		query = `UPDATE bookings SET status = 'cancelled' WHERE id = $1`

		_, err = tx.Exec(ctx, query, bookingID)

		return err
	})
}

// GetAvailabilityByShowId reads committed state only; it takes no locks, so
// an in-flight reservation is invisible until its transaction commits.
func (p *PostgresBookingRepository) GetAvailabilityByShowId(ctx context.Context, showID int) (*domain.ShowAvailability, error) {
	availability := domain.ShowAvailability{
		ShowID:      showID,
		BookedSeats: []int{},
	}

	query := `SELECT total_seats FROM shows WHERE id = $1`

	err := p.db.QueryRow(ctx, query, showID).Scan(&availability.TotalSeats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShowNotFound
		}

		return nil, err
	}

	query = `
		SELECT seat_number FROM bookings
		WHERE show_id = $1 AND status = 'booked'
		ORDER BY seat_number
	`

	rows, err := p.db.Query(ctx, query, showID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var seatNumber int

		if err := rows.Scan(&seatNumber); err != nil {
			return nil, err
		}

		availability.BookedSeats = append(availability.BookedSeats, seatNumber)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	availability.Available = availability.TotalSeats - len(availability.BookedSeats)
	if availability.Available < 0 {
		availability.Available = 0
	}

	return &availability, nil
}

func (p *PostgresBookingRepository) GetSummariesByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.BookingSummary, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			b.id,
			b.reference,
			m.title,
			s.screen_name,
			s.start_time,
			b.seat_number,
			b.status,
			b.created_at
		FROM bookings b
		JOIN shows s ON b.show_id = s.id
		JOIN movies m ON s.movie_id = m.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.BookingSummary, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.BookingSummary

		err := rows.Scan(
			&totalRecords,
			&booking.BookingID,
			&booking.Reference,
			&booking.MovieTitle,
			&booking.ScreenName,
			&booking.ShowTime,
			&booking.SeatNumber,
			&booking.Status,
			&booking.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	if isLockNotAvailable(err) {
		err = domain.ErrLockContention
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func isLockNotAvailable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.LockNotAvailable
}
