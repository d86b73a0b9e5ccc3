// README: Traveler service handles registration, lookup and lifecycle transitions.
package traveler

import (
	"context"
	"errors"
	"strings"
	"time"

	"courier/internal/types"
)

var (
	ErrNotFound     = errors.New("traveler not found")
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidState = errors.New("invalid state transition")
	ErrConflict     = errors.New("traveler state conflict")
)

type Repository interface {
	Create(ctx context.Context, t *Traveler) error
	Get(ctx context.Context, id types.ID) (*Traveler, error)
	List(ctx context.Context, f Filter) ([]Traveler, error)
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
	Email           string
	Phone           string
	CurrentLocation string
	DestinationCity string
	DepartureDate   time.Time
	TravellerType   Type
	DeviceToken     string
}

type StatusCommand struct {
	TravelerID types.ID
	Status     Status
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Traveler, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.CurrentLocation = strings.TrimSpace(cmd.CurrentLocation)
	cmd.DestinationCity = strings.TrimSpace(cmd.DestinationCity)
	if cmd.Name == "" || cmd.CurrentLocation == "" || cmd.DestinationCity == "" {
		return nil, ErrBadRequest
	}
	if cmd.Email == "" && cmd.Phone == "" {
		return nil, ErrBadRequest
	}
	if cmd.TravellerType == "" {
		cmd.TravellerType = TypeDomestic
	}
	if !validType(cmd.TravellerType) {
		return nil, ErrBadRequest
	}

	t := &Traveler{
		ID:              types.NewID(),
		Name:            cmd.Name,
		Email:           cmd.Email,
		Phone:           cmd.Phone,
		CurrentLocation: cmd.CurrentLocation,
		DestinationCity: cmd.DestinationCity,
		DepartureDate:   cmd.DepartureDate,
		TravellerType:   cmd.TravellerType,
		Status:          StatusPending,
		DeviceToken:     cmd.DeviceToken,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Traveler, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Traveler, error) {
	return s.store.List(ctx, f)
}

// UpdateStatus applies an externally driven transition (admin approval, order completion).
func (s *Service) UpdateStatus(ctx context.Context, cmd StatusCommand) (*Traveler, error) {
	t, err := s.store.Get(ctx, cmd.TravelerID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(t.Status, cmd.Status) {
		return nil, ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, t.ID, t.Status, cmd.Status, t.StatusVersion)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	t.Status = cmd.Status
	t.StatusVersion++
	return t, nil
}
