// README: Customer service registers and looks up customer accounts.
package customer

import (
	"context"
	"errors"
	"strings"
	"time"

	"courier/internal/types"
)

var (
	ErrNotFound   = errors.New("customer not found")
	ErrBadRequest = errors.New("bad request")
)

type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Get(ctx context.Context, id types.ID) (*Customer, error)
	List(ctx context.Context, kind Kind) ([]Customer, error)
}

type Service struct {
	store Repository
}

func NewService(store Repository) *Service {
	return &Service{store: store}
}

type RegisterCommand struct {
	Kind        Kind
	Name        string
	CompanyName string
	Email       string
	Phone       string
	City        string
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Customer, error) {
	if !cmd.Kind.Valid() {
		return nil, ErrBadRequest
	}
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.CompanyName = strings.TrimSpace(cmd.CompanyName)
	if cmd.Name == "" {
		return nil, ErrBadRequest
	}
	// corporate accounts are registered under a company
	if cmd.Kind == KindCorporate && cmd.CompanyName == "" {
		return nil, ErrBadRequest
	}
	if cmd.Email == "" && cmd.Phone == "" {
		return nil, ErrBadRequest
	}

	c := &Customer{
		ID:          types.NewID(),
		Kind:        cmd.Kind,
		Name:        cmd.Name,
		CompanyName: cmd.CompanyName,
		Email:       cmd.Email,
		Phone:       cmd.Phone,
		City:        strings.TrimSpace(cmd.City),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Customer, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, kind Kind) ([]Customer, error) {
	if kind != "" && !kind.Valid() {
		return nil, ErrBadRequest
	}
	return s.store.List(ctx, kind)
}
