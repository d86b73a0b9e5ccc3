// README: Order service implements state transitions, assignment checks and persistence.
package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"courier/internal/logger"
	"courier/internal/modules/partner"
	"courier/internal/modules/traveler"
	"courier/internal/route"
	"courier/internal/types"
)

var (
	ErrInvalidState  = errors.New("invalid state transition")
	ErrNotFound      = errors.New("order not found")
	ErrConflict      = errors.New("order state conflict")
	ErrBadRequest    = errors.New("bad request")
	ErrRouteMismatch = errors.New("assignee does not serve the order route")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Get(ctx context.Context, id types.ID) (*Order, error)
	List(ctx context.Context, f Filter) ([]Order, error)
	UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, a *Assignment, reason *string) (bool, error)
	AppendEvent(ctx context.Context, e *Event) error
	Events(ctx context.Context, id types.ID) ([]Event, error)
}

type TravelerLookup interface {
	Get(ctx context.Context, id types.ID) (*traveler.Traveler, error)
}

type PartnerLookup interface {
	Get(ctx context.Context, id types.ID) (*partner.Partner, error)
}

// Notifier tells an assignee about a new order.
type Notifier interface {
	NotifyTravelerAssigned(ctx context.Context, t traveler.Traveler, o Order) error
}

type Service struct {
	store     Repository
	travelers TravelerLookup
	partners  PartnerLookup
	notifier  Notifier
	log       *zap.Logger
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = logger.OrNop(l) }
}

func NewService(store Repository, travelers TravelerLookup, partners PartnerLookup, opts ...Option) *Service {
	s := &Service{store: store, travelers: travelers, partners: partners, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type CreateCommand struct {
	BuyerID        types.ID
	DeliveryMethod DeliveryMethod
	Info           OrderInfo
}

type AssignCommand struct {
	OrderID    types.ID
	TravelerID types.ID
	PartnerID  types.ID
	ActorID    *types.ID
}

type AdvanceCommand struct {
	OrderID   types.ID
	Status    Status
	ActorType string
	ActorID   *types.ID
}

type CancelCommand struct {
	OrderID   types.ID
	ActorType string
	ActorID   *types.ID
	Reason    string
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Order, error) {
	cmd.Info.ProductName = strings.TrimSpace(cmd.Info.ProductName)
	cmd.Info.OriginCity = strings.TrimSpace(cmd.Info.OriginCity)
	cmd.Info.DestinationCity = strings.TrimSpace(cmd.Info.DestinationCity)
	if cmd.BuyerID == "" || cmd.Info.ProductName == "" || cmd.Info.DestinationCity == "" {
		return nil, ErrBadRequest
	}
	if cmd.DeliveryMethod == "" {
		cmd.DeliveryMethod = DeliveryTraveler
	}
	if !validMethod(cmd.DeliveryMethod) {
		return nil, ErrBadRequest
	}

	now := time.Now().UTC()
	o := &Order{
		ID:             types.NewID(),
		BuyerID:        cmd.BuyerID,
		DeliveryMethod: cmd.DeliveryMethod,
		OrderInfo:      cmd.Info,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(ctx, o); err != nil {
		return nil, err
	}
	s.appendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: StatusNone,
		ToStatus:   StatusPending,
		ActorType:  "buyer",
		ActorID:    &cmd.BuyerID,
		CreatedAt:  now,
	})
	return o, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Order, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter) ([]Order, error) {
	return s.store.List(ctx, f)
}

func (s *Service) Events(ctx context.Context, id types.ID) ([]Event, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Events(ctx, id)
}

// Assign hands the order to exactly one traveler or partner. The assignee must
// serve the order's route at the time of assignment.
func (s *Service) Assign(ctx context.Context, cmd AssignCommand) (*Order, error) {
	if (cmd.TravelerID == "") == (cmd.PartnerID == "") {
		return nil, ErrBadRequest
	}
	o, err := s.store.Get(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusAssigned) {
		return nil, ErrInvalidState
	}

	var (
		a        Assignment
		assignee *traveler.Traveler
	)
	if cmd.TravelerID != "" {
		t, err := s.travelers.Get(ctx, cmd.TravelerID)
		if err != nil {
			return nil, err
		}
		if !t.Available() {
			return nil, ErrInvalidState
		}
		if !route.DestinationMatches(o.OrderInfo.DestinationCity, t.DestinationCity) {
			return nil, ErrRouteMismatch
		}
		a = Assignment{Method: DeliveryTraveler, TravelerID: &t.ID}
		assignee = t
	} else {
		p, err := s.partners.Get(ctx, cmd.PartnerID)
		if err != nil {
			return nil, err
		}
		if !p.Available() {
			return nil, ErrInvalidState
		}
		if !route.PartnerServes(o.OrderInfo.OriginCity, o.OrderInfo.DestinationCity, *p) {
			return nil, ErrRouteMismatch
		}
		a = Assignment{Method: DeliveryPartner, PartnerID: &p.ID}
	}

	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, StatusAssigned, o.StatusVersion, &a, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	from := o.Status
	o.Status = StatusAssigned
	o.StatusVersion++
	o.DeliveryMethod = a.Method
	o.AssignedTravelerID = a.TravelerID
	o.AssignedPartnerID = a.PartnerID
	o.UpdatedAt = time.Now().UTC()

	s.appendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: from,
		ToStatus:   StatusAssigned,
		ActorType:  "buyer",
		ActorID:    cmd.ActorID,
		CreatedAt:  o.UpdatedAt,
	})

	if assignee != nil && s.notifier != nil {
		if err := s.notifier.NotifyTravelerAssigned(ctx, *assignee, *o); err != nil {
			s.log.Warn("notify traveler failed",
				zap.String("order_id", string(o.ID)),
				zap.String("traveler_id", string(assignee.ID)),
				zap.Error(err))
		}
	}
	return o, nil
}

// Advance moves the order along the delivery flow. Assignment and
// cancellation have their own operations.
func (s *Service) Advance(ctx context.Context, cmd AdvanceCommand) (*Order, error) {
	if cmd.Status == StatusAssigned || cmd.Status == StatusCancelled {
		return nil, ErrBadRequest
	}
	return s.transition(ctx, cmd.OrderID, cmd.Status, cmd.ActorType, cmd.ActorID, nil)
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) (*Order, error) {
	var reason *string
	if r := strings.TrimSpace(cmd.Reason); r != "" {
		reason = &r
	}
	return s.transition(ctx, cmd.OrderID, StatusCancelled, cmd.ActorType, cmd.ActorID, reason)
}

func (s *Service) transition(ctx context.Context, id types.ID, to Status, actorType string, actorID *types.ID, reason *string) (*Order, error) {
	o, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, to) {
		return nil, ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, o.ID, o.Status, to, o.StatusVersion, nil, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}
	from := o.Status
	o.Status = to
	o.StatusVersion++
	o.UpdatedAt = time.Now().UTC()
	if reason != nil {
		o.CancelReason = reason
	}
	if actorType == "" {
		actorType = "system"
	}
	s.appendEvent(ctx, &Event{
		OrderID:    o.ID,
		FromStatus: from,
		ToStatus:   to,
		ActorType:  actorType,
		ActorID:    actorID,
		CreatedAt:  o.UpdatedAt,
	})
	return o, nil
}

func (s *Service) appendEvent(ctx context.Context, e *Event) {
	if err := s.store.AppendEvent(ctx, e); err != nil {
		s.log.Warn("append order event failed", zap.String("order_id", string(e.OrderID)), zap.Error(err))
	}
}
