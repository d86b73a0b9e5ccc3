// README: Matching service composes the route matcher, distance estimator and fees into views.
package matching

import (
	"context"

	"go.uber.org/zap"

	"courier/internal/config"
	"courier/internal/logger"
	"courier/internal/modules/distance"
	"courier/internal/modules/order"
	"courier/internal/modules/partner"
	"courier/internal/modules/pricing"
	"courier/internal/modules/traveler"
	"courier/internal/route"
	"courier/internal/types"
)

type OrderSource interface {
	List(ctx context.Context, f order.Filter) ([]order.Order, error)
	Get(ctx context.Context, id types.ID) (*order.Order, error)
}

type TravelerSource interface {
	List(ctx context.Context, f traveler.Filter) ([]traveler.Traveler, error)
}

type PartnerSource interface {
	List(ctx context.Context, f partner.Filter) ([]partner.Partner, error)
}

type Sources struct {
	Orders    OrderSource
	Travelers TravelerSource
	Partners  PartnerSource
}

type Service struct {
	src       Sources
	estimator *distance.Estimator
	fees      *pricing.Service
	cfg       config.MatchingConfig
	log       *zap.Logger
}

func NewService(src Sources, estimator *distance.Estimator, fees *pricing.Service, cfg config.MatchingConfig, log *zap.Logger) *Service {
	if cfg.QuickMatchLimit <= 0 {
		cfg.QuickMatchLimit = route.QuickMatchLimit
	}
	return &Service{src: src, estimator: estimator, fees: fees, cfg: cfg, log: logger.OrNop(log)}
}

// QuickMatch returns at most QuickMatchLimit eligible travelers heading to
// the order's destination.
func (s *Service) QuickMatch(ctx context.Context, orderID types.ID) ([]traveler.Traveler, error) {
	return s.travelerMatches(ctx, orderID, s.cfg.QuickMatchLimit)
}

// Matches returns every eligible traveler heading to the order's destination.
func (s *Service) Matches(ctx context.Context, orderID types.ID) ([]traveler.Traveler, error) {
	return s.travelerMatches(ctx, orderID, 0)
}

func (s *Service) travelerMatches(ctx context.Context, orderID types.ID, limit int) ([]traveler.Traveler, error) {
	o, err := s.src.Orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	travelers, err := s.eligibleTravelers(ctx)
	if err != nil {
		return nil, err
	}
	return route.MatchTravelers(o.OrderInfo.DestinationCity, travelers, limit), nil
}

// Board loads all orders and travelers. A failed fetch yields an empty board
// with a message rather than an error.
func (s *Service) Board(ctx context.Context) Board {
	empty := Board{Orders: []BoardOrder{}, Travelers: []traveler.Traveler{}}

	orders, err := s.src.Orders.List(ctx, order.Filter{})
	if err != nil {
		return s.boardFailed(ctx, empty, "orders", err)
	}
	travelers, err := s.eligibleTravelers(ctx)
	if err != nil {
		return s.boardFailed(ctx, empty, "travelers", err)
	}

	var partners []partner.Partner
	for _, o := range orders {
		if route.IsLocal(o.OrderInfo.OriginCity, o.OrderInfo.DestinationCity) {
			partners, err = s.eligiblePartners(ctx)
			if err != nil {
				return s.boardFailed(ctx, empty, "partners", err)
			}
			break
		}
	}

	board := Board{Orders: make([]BoardOrder, 0, len(orders)), Travelers: travelers}
	for _, o := range orders {
		bo := BoardOrder{
			Order:     o,
			Local:     route.IsLocal(o.OrderInfo.OriginCity, o.OrderInfo.DestinationCity),
			Travelers: []traveler.Traveler{},
			Partners:  []PartnerOption{},
		}
		if bo.Local {
			bo.Partners = s.partnerOptions(ctx, o, partners, s.mechanismQuote)
		} else {
			bo.Travelers = route.MatchTravelers(o.OrderInfo.DestinationCity, travelers, 0)
		}
		board.Orders = append(board.Orders, bo)
	}
	return board
}

func (s *Service) boardFailed(ctx context.Context, b Board, what string, err error) Board {
	if ctx.Err() == nil {
		s.log.Error("board fetch failed", zap.String("source", what), zap.Error(err))
	}
	b.Error = BoardLoadError
	return b
}

// Selection builds the match-selection view: quick traveler matches and, for
// a local order, partner candidates priced with the flat selection fee.
func (s *Service) Selection(ctx context.Context, orderID types.ID) (Selection, error) {
	o, err := s.src.Orders.Get(ctx, orderID)
	if err != nil {
		return Selection{}, err
	}
	travelers, err := s.eligibleTravelers(ctx)
	if err != nil {
		return Selection{}, err
	}
	sel := Selection{
		Order:     *o,
		Local:     route.IsLocal(o.OrderInfo.OriginCity, o.OrderInfo.DestinationCity),
		Travelers: route.MatchTravelers(o.OrderInfo.DestinationCity, travelers, s.cfg.QuickMatchLimit),
		Partners:  []PartnerOption{},
	}
	if !sel.Local {
		return sel, nil
	}
	partners, err := s.eligiblePartners(ctx)
	if err != nil {
		return Selection{}, err
	}
	sel.Partners = s.partnerOptions(ctx, *o, partners, func(_ partner.Partner, km float64) *pricing.Quote {
		q, err := s.fees.SelectionQuote(km)
		if err != nil {
			return nil
		}
		return &q
	})
	return sel, nil
}

type quoteFunc func(p partner.Partner, km float64) *pricing.Quote

func (s *Service) mechanismQuote(p partner.Partner, km float64) *pricing.Quote {
	q, err := s.fees.Quote(p.Mechanism, km)
	if err != nil {
		return nil
	}
	return &q
}

func (s *Service) partnerOptions(ctx context.Context, o order.Order, partners []partner.Partner, quote quoteFunc) []PartnerOption {
	matched := route.MatchPartners(o.OrderInfo.OriginCity, o.OrderInfo.DestinationCity, partners, 0)
	pairs := make([]distance.Pair, len(matched))
	for i, p := range matched {
		pairs[i] = distance.Pair{
			CandidateID: p.ID,
			Origin:      p.ServiceLocation(),
			Destination: o.OrderInfo.DestinationCity,
		}
	}
	estimates := s.estimator.EstimateBatch(ctx, pairs)

	out := make([]PartnerOption, 0, len(matched))
	for _, p := range matched {
		opt := PartnerOption{Partner: p}
		if est, ok := estimates[p.ID]; ok {
			opt.Distance = &est
			opt.Fee = quote(p, est.DistanceKm)
		}
		out = append(out, opt)
	}
	return out
}

func (s *Service) eligibleTravelers(ctx context.Context) ([]traveler.Traveler, error) {
	all, err := s.src.Travelers.List(ctx, traveler.Filter{})
	if err != nil {
		return nil, err
	}
	return route.Filter(all, 0, traveler.Traveler.Available), nil
}

func (s *Service) eligiblePartners(ctx context.Context) ([]partner.Partner, error) {
	all, err := s.src.Partners.List(ctx, partner.Filter{})
	if err != nil {
		return nil, err
	}
	return route.Filter(all, 0, partner.Partner.Available), nil
}
