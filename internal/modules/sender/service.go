// README: Sender service registers delivery items and lists them for discovery.
package sender

import (
	"context"
	"errors"
	"strings"
	"time"

	"courier/internal/types"
)

var ErrBadRequest = errors.New("bad request")

type Repository interface {
	Create(ctx context.Context, s *Sender) error
	List(ctx context.Context, f Filter) ([]Sender, error)
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
	PickupLocation  string
	DestinationCity string
	ItemDescription string
	ItemWeightKg    float64
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Sender, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.PickupLocation = strings.TrimSpace(cmd.PickupLocation)
	cmd.DestinationCity = strings.TrimSpace(cmd.DestinationCity)
	if cmd.Name == "" || cmd.PickupLocation == "" || cmd.DestinationCity == "" {
		return nil, ErrBadRequest
	}
	if cmd.Email == "" && cmd.Phone == "" {
		return nil, ErrBadRequest
	}
	if cmd.ItemWeightKg < 0 {
		return nil, ErrBadRequest
	}

	snd := &Sender{
		ID:              types.NewID(),
		Name:            cmd.Name,
		Email:           cmd.Email,
		Phone:           cmd.Phone,
		PickupLocation:  cmd.PickupLocation,
		DestinationCity: cmd.DestinationCity,
		ItemDescription: cmd.ItemDescription,
		ItemWeightKg:    cmd.ItemWeightKg,
		Status:          StatusOpen,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.store.Create(ctx, snd); err != nil {
		return nil, err
	}
	return snd, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Sender, error) {
	return s.store.List(ctx, f)
}
