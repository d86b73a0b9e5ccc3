// README: Order store backed by PostgreSQL.
package order

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

const orderColumns = `id, buyer_id, delivery_method, product_name, description, origin_city,
	destination_city, preferred_delivery_date, assigned_traveler_id, assigned_partner_id,
	status, status_version, cancellation_reason, created_at, updated_at`

func (s *Store) Create(ctx context.Context, o *Order) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		string(o.ID),
		string(o.BuyerID),
		string(o.DeliveryMethod),
		o.OrderInfo.ProductName,
		o.OrderInfo.Description,
		o.OrderInfo.OriginCity,
		o.OrderInfo.DestinationCity,
		o.OrderInfo.PreferredDeliveryDate,
		toStringPtr(o.AssignedTravelerID),
		toStringPtr(o.AssignedPartnerID),
		string(o.Status),
		o.StatusVersion,
		o.CancelReason,
		o.CreatedAt,
		o.UpdatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, string(id))
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (s *Store) List(ctx context.Context, f Filter) ([]Order, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.DeliveryMethod != "" {
		args = append(args, string(f.DeliveryMethod))
		where = append(where, fmt.Sprintf("delivery_method = $%d", len(args)))
	}
	if f.BuyerID != "" {
		args = append(args, string(f.BuyerID))
		where = append(where, fmt.Sprintf("buyer_id = $%d", len(args)))
	}
	q := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at, id"

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, a *Assignment, reason *string) (bool, error) {
	var method, travelerID, partnerID *string
	if a != nil {
		m := string(a.Method)
		method = &m
		travelerID = toStringPtr(a.TravelerID)
		partnerID = toStringPtr(a.PartnerID)
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
			status_version = status_version + 1,
			delivery_method = COALESCE($2, delivery_method),
			assigned_traveler_id = CASE WHEN $2::text IS NULL THEN assigned_traveler_id ELSE $3 END,
			assigned_partner_id = CASE WHEN $2::text IS NULL THEN assigned_partner_id ELSE $4 END,
			cancellation_reason = COALESCE($5, cancellation_reason),
			updated_at = NOW()
		WHERE id = $6 AND status = $7 AND status_version = $8`,
		string(to),
		method,
		travelerID,
		partnerID,
		reason,
		string(id),
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_state_events (
			order_id, from_status, to_status, actor_type, actor_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.OrderID),
		string(e.FromStatus),
		string(e.ToStatus),
		e.ActorType,
		toStringPtr(e.ActorID),
		e.CreatedAt,
	)
	return err
}

func (s *Store) Events(ctx context.Context, id types.ID) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, order_id, from_status, to_status, actor_type, actor_id, created_at
		FROM order_state_events
		WHERE order_id = $1
		ORDER BY id`, string(id))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var (
			e       Event
			actorID *string
		)
		if err := rows.Scan(&e.ID, &e.OrderID, &e.FromStatus, &e.ToStatus, &e.ActorType, &actorID, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ActorID = fromStringPtr(actorID)
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o                   Order
		travelerID, partner *string
	)
	err := row.Scan(
		&o.ID, &o.BuyerID, &o.DeliveryMethod,
		&o.OrderInfo.ProductName, &o.OrderInfo.Description, &o.OrderInfo.OriginCity,
		&o.OrderInfo.DestinationCity, &o.OrderInfo.PreferredDeliveryDate,
		&travelerID, &partner,
		&o.Status, &o.StatusVersion, &o.CancelReason, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.AssignedTravelerID = fromStringPtr(travelerID)
	o.AssignedPartnerID = fromStringPtr(partner)
	return &o, nil
}

func toStringPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func fromStringPtr(v *string) *types.ID {
	if v == nil {
		return nil
	}
	id := types.ID(*v)
	return &id
}
