// README: Customer store backed by PostgreSQL.
package customer

import (
	"context"
	"errors"

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

const customerColumns = `id, kind, name, company_name, email, phone, city, created_at`

func (s *Store) Create(ctx context.Context, c *Customer) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		string(c.ID), string(c.Kind), c.Name, c.CompanyName, c.Email, c.Phone, c.City, c.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Customer, error) {
	row := s.db.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, string(id))
	c, err := scanCustomer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *Store) List(ctx context.Context, kind Kind) ([]Customer, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if kind == "" {
		rows, err = s.db.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at, id`)
	} else {
		rows, err = s.db.Query(ctx, `SELECT `+customerColumns+` FROM customers WHERE kind = $1 ORDER BY created_at, id`, string(kind))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func scanCustomer(row pgx.Row) (*Customer, error) {
	var c Customer
	if err := row.Scan(&c.ID, &c.Kind, &c.Name, &c.CompanyName, &c.Email, &c.Phone, &c.City, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
