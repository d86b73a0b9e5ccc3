// README: Fee rate overrides stored in PostgreSQL.
package pricing

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) LoadRates(ctx context.Context) (FeeTable, error) {
	rows, err := s.db.Query(ctx, `SELECT mechanism, base_fee, per_km_fee FROM delivery_fee_rates`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := FeeTable{}
	for rows.Next() {
		var (
			m  string
			fs FeeStructure
		)
		if err := rows.Scan(&m, &fs.BaseFee, &fs.PerKmFee); err != nil {
			return nil, err
		}
		out[Mechanism(m)] = fs
	}
	return out, rows.Err()
}

func (s *Store) UpsertRate(ctx context.Context, m Mechanism, fs FeeStructure) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO delivery_fee_rates (mechanism, base_fee, per_km_fee)
		VALUES ($1, $2, $3)
		ON CONFLICT (mechanism) DO UPDATE
		SET base_fee = EXCLUDED.base_fee, per_km_fee = EXCLUDED.per_km_fee, updated_at = NOW()`,
		string(m), fs.BaseFee, fs.PerKmFee,
	)
	return err
}
