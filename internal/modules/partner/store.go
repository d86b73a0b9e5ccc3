// README: Partner store backed by PostgreSQL.
package partner

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

const partnerColumns = `id, name, company_name, email, phone, city, primary_location,
	mechanism, status, status_version, created_at`

func (s *Store) Create(ctx context.Context, p *Partner) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO delivery_partners (`+partnerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		string(p.ID), p.Name, p.CompanyName, p.Email, p.Phone, p.City, p.PrimaryLocation,
		string(p.Mechanism), string(p.Status), p.StatusVersion, p.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Partner, error) {
	row := s.db.QueryRow(ctx, `SELECT `+partnerColumns+` FROM delivery_partners WHERE id = $1`, string(id))
	p, err := scanPartner(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (s *Store) List(ctx context.Context, f Filter) ([]Partner, error) {
	var (
		where []string
		args  []any
	)
	if f.City != "" {
		args = append(args, f.City)
		where = append(where, fmt.Sprintf("(%s OR %s)", containsExpr("city", len(args)), containsExpr("primary_location", len(args))))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	q := `SELECT ` + partnerColumns + ` FROM delivery_partners`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at, id"

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Partner{}
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE delivery_partners
		SET status = $1, status_version = status_version + 1
		WHERE id = $2 AND status = $3 AND status_version = $4`,
		string(to), string(id), string(from), version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanPartner(row pgx.Row) (*Partner, error) {
	var p Partner
	if err := row.Scan(
		&p.ID, &p.Name, &p.CompanyName, &p.Email, &p.Phone, &p.City, &p.PrimaryLocation,
		&p.Mechanism, &p.Status, &p.StatusVersion, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// containsExpr matches col against placeholder n as a literal, case-insensitive
// substring, the same test the memory store applies.
func containsExpr(col string, n int) string {
	return fmt.Sprintf("strpos(lower(%s), lower($%d::text)) > 0", col, n)
}
