// README: Partner service handles registration, lookup and lifecycle transitions.
package partner

import (
	"context"
	"errors"
	"strings"
	"time"

	"courier/internal/modules/pricing"
	"courier/internal/types"
)

var (
	ErrNotFound     = errors.New("partner not found")
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidState = errors.New("invalid state transition")
	ErrConflict     = errors.New("partner state conflict")
)

type Repository interface {
	Create(ctx context.Context, p *Partner) error
	Get(ctx context.Context, id types.ID) (*Partner, error)
	List(ctx context.Context, f Filter) ([]Partner, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int) (bool, error)
}

type Service struct {
	store Repository
}

func NewService(store Repository) *Service {
	return &Service{store: store}
}

type RegisterCommand struct {
	Name            string
	CompanyName     string
	Email           string
	Phone           string
	City            string
	PrimaryLocation string
	Mechanism       pricing.Mechanism
}

type StatusCommand struct {
	PartnerID types.ID
	Status    Status
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Partner, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.City = strings.TrimSpace(cmd.City)
	cmd.PrimaryLocation = strings.TrimSpace(cmd.PrimaryLocation)
	if cmd.Name == "" && cmd.CompanyName == "" {
		return nil, ErrBadRequest
	}
	if cmd.City == "" && cmd.PrimaryLocation == "" {
		return nil, ErrBadRequest
	}
	if cmd.Email == "" && cmd.Phone == "" {
		return nil, ErrBadRequest
	}
	if !cmd.Mechanism.Valid() {
		return nil, ErrBadRequest
	}

	p := &Partner{
		ID:              types.NewID(),
		Name:            cmd.Name,
		CompanyName:     cmd.CompanyName,
		Email:           cmd.Email,
		Phone:           cmd.Phone,
		City:            cmd.City,
		PrimaryLocation: cmd.PrimaryLocation,
		Mechanism:       cmd.Mechanism,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Partner, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Partner, error) {
	return s.store.List(ctx, f)
}

func (s *Service) UpdateStatus(ctx context.Context, cmd StatusCommand) (*Partner, error) {
	p, err := s.store.Get(ctx, cmd.PartnerID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(p.Status, cmd.Status) {
		return nil, ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, p.ID, p.Status, cmd.Status, p.StatusVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	p.Status = cmd.Status
	p.StatusVersion++
	return p, nil
}
