package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists booking records in PostgreSQL. A digits-only
// shadow column backs the fuzzy reference lookup so the SQL tiers
// match the in-memory resolution.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
			reference TEXT PRIMARY KEY,
			reference_digits TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			guests TEXT NOT NULL DEFAULT '',
			room_type TEXT NOT NULL DEFAULT '',
			arrival_date TEXT NOT NULL DEFAULT '',
			departure_date TEXT NOT NULL DEFAULT '',
			payment_option TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ
		);`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_digits ON bookings (reference_digits);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

const recordColumns = `reference, first_name, last_name, email, guests, room_type,
	 arrival_date, departure_date, payment_option, created_at, updated_at`

func (s *PostgresStore) Save(ctx context.Context, rec Record) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO bookings (reference, reference_digits, first_name, last_name, email,
			guests, room_type, arrival_date, departure_date, payment_option, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (reference) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			guests = EXCLUDED.guests,
			room_type = EXCLUDED.room_type,
			arrival_date = EXCLUDED.arrival_date,
			departure_date = EXCLUDED.departure_date,
			payment_option = EXCLUDED.payment_option,
			updated_at = EXCLUDED.updated_at`,
		rec.Reference,
		digitsOnly(rec.Reference),
		rec.FirstName,
		rec.LastName,
		rec.Email,
		rec.Guests,
		rec.RoomType,
		rec.ArrivalDate,
		rec.DepartureDate,
		rec.PaymentOption,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save booking: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, refOrFragment string) (Record, error) {
	ref, err := s.resolveRef(ctx, refOrFragment)
	if err != nil {
		return Record{}, err
	}

	row := s.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM bookings WHERE reference=$1`, ref)

	var rec Record
	err = row.Scan(&rec.Reference, &rec.FirstName, &rec.LastName, &rec.Email,
		&rec.Guests, &rec.RoomType, &rec.ArrivalDate, &rec.DepartureDate,
		&rec.PaymentOption, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get booking: %w", err)
	}
	return rec, nil
}

func (s *PostgresStore) Delete(ctx context.Context, refOrFragment string) error {
	ref, err := s.resolveRef(ctx, refOrFragment)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM bookings WHERE reference=$1`, ref)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM bookings ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.Reference, &rec.FirstName, &rec.LastName, &rec.Email,
			&rec.Guests, &rec.RoomType, &rec.ArrivalDate, &rec.DepartureDate,
			&rec.PaymentOption, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// resolveRef applies the lookup tiers in SQL: exact reference, prefix
// plus digits, then digits-only match.
func (s *PostgresStore) resolveRef(ctx context.Context, refOrFragment string) (string, error) {
	var ref string
	err := s.pool.QueryRow(ctx,
		`SELECT reference FROM bookings WHERE reference=$1`, refOrFragment).Scan(&ref)
	if err == nil {
		return ref, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("resolve booking reference: %w", err)
	}

	digits := digitsOnly(refOrFragment)
	if digits == "" {
		return "", ErrNotFound
	}
	err = s.pool.QueryRow(ctx,
		`SELECT reference FROM bookings
		 WHERE reference=$1 OR reference_digits=$2
		 ORDER BY reference=$1 DESC LIMIT 1`,
		RefPrefix+digits, digits).Scan(&ref)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("resolve booking reference: %w", err)
	}
	return ref, nil
}
