// README: Traveler store backed by PostgreSQL.
package traveler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"courier/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const travelerColumns = `id, name, email, phone, current_location, destination_city,
	departure_date, traveller_type, status, status_version, device_token, created_at`

func (s *Store) Create(ctx context.Context, t *Traveler) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO travellers (`+travelerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		string(t.ID), t.Name, t.Email, t.Phone, t.CurrentLocation, t.DestinationCity,
		t.DepartureDate, string(t.TravellerType), string(t.Status), t.StatusVersion,
		t.DeviceToken, t.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Traveler, error) {
	row := s.db.QueryRow(ctx, `SELECT `+travelerColumns+` FROM travellers WHERE id = $1`, string(id))
	t, err := scanTraveler(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// List filters with case-insensitive substring matching on the location fields.
func (s *Store) List(ctx context.Context, f Filter) ([]Traveler, error) {
	var (
		where []string
		args  []any
	)
	if f.DestinationCity != "" {
		args = append(args, f.DestinationCity)
		where = append(where, containsExpr("destination_city", len(args)))
	}
	if f.CurrentLocation != "" {
		args = append(args, f.CurrentLocation)
		where = append(where, containsExpr("current_location", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	q := `SELECT ` + travelerColumns + ` FROM travellers`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at, id"

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Traveler{}
	for rows.Next() {
		t, err := scanTraveler(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE travellers
		SET status = $1, status_version = status_version + 1
		WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to), string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanTraveler(row pgx.Row) (*Traveler, error) {
	var t Traveler
	err := row.Scan(
		&t.ID, &t.Name, &t.Email, &t.Phone, &t.CurrentLocation, &t.DestinationCity,
		&t.DepartureDate, &t.TravellerType, &t.Status, &t.StatusVersion, &t.DeviceToken, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// containsExpr matches col against placeholder n as a literal, case-insensitive
// substring, the same test the memory store applies.
func containsExpr(col string, n int) string {
	return fmt.Sprintf("strpos(lower(%s), lower($%d::text)) > 0", col, n)
}
