// README: Sender store backed by PostgreSQL.
package sender

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, snd *Sender) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO senders (id, name, email, phone, pickup_location, destination_city,
			item_description, item_weight_kg, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		string(snd.ID), snd.Name, snd.Email, snd.Phone, snd.PickupLocation, snd.DestinationCity,
		snd.ItemDescription, snd.ItemWeightKg, string(snd.Status), snd.CreatedAt,
	)
	return err
}

func (s *Store) List(ctx context.Context, f Filter) ([]Sender, error) {
	var (
		where []string
		args  []any
	)
	if f.DestinationCity != "" {
		args = append(args, f.DestinationCity)
		where = append(where, containsExpr("destination_city", len(args)))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	q := `SELECT id, name, email, phone, pickup_location, destination_city,
		item_description, item_weight_kg, status, created_at FROM senders`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at, id"

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Sender{}
	for rows.Next() {
		var snd Sender
		if err := rows.Scan(&snd.ID, &snd.Name, &snd.Email, &snd.Phone, &snd.PickupLocation,
			&snd.DestinationCity, &snd.ItemDescription, &snd.ItemWeightKg, &snd.Status, &snd.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, snd)
	}
	return out, rows.Err()
}

// containsExpr matches col against placeholder n as a literal, case-insensitive
// substring, the same test the memory store applies.
func containsExpr(col string, n int) string {
	return fmt.Sprintf("strpos(lower(%s), lower($%d::text)) > 0", col, n)
}
