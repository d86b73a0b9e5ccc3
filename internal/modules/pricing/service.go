// README: Pricing service computes delivery fee quotes from the configured fee table.
package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"courier/internal/config"
)

var (
	// ErrNoFeeStructure means the mechanism has no fee; callers show nothing rather than zero.
	ErrNoFeeStructure = errors.New("no fee structure for mechanism")
	ErrBadRequest     = errors.New("bad request")
)

// RateLoader supplies fee overrides from persistent storage.
type RateLoader interface {
	LoadRates(ctx context.Context) (FeeTable, error)
}

type Service struct {
	mu       sync.RWMutex
	table    FeeTable
	currency string
	// configured rates win over rows loaded from storage.
	configured FeeTable
}

func NewService(cfg config.PricingConfig) *Service {
	table := DefaultFeeTable()
	configured := make(FeeTable, len(cfg.Rates))
	for m, r := range cfg.Rates {
		fs := FeeStructure{BaseFee: r.BaseFee, PerKmFee: r.PerKmFee}
		table[Mechanism(m)] = fs
		configured[Mechanism(m)] = fs
	}
	currency := cfg.Currency
	if currency == "" {
		currency = "ETB"
	}
	return &Service{table: table, currency: currency, configured: configured}
}

// Reload overlays rows from the loader on top of the current table. Rates
// from the fee-table file are applied last, so a file override survives.
func (s *Service) Reload(ctx context.Context, loader RateLoader) error {
	rows, err := loader.LoadRates(ctx)
	if err != nil {
		return fmt.Errorf("load fee rates: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for m, fs := range rows {
		s.table[m] = fs
	}
	for m, fs := range s.configured {
		s.table[m] = fs
	}
	return nil
}

func (s *Service) Currency() string {
	return s.currency
}

func (s *Service) Structure(m Mechanism) (FeeStructure, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fs, ok := s.table[m]
	return fs, ok
}

// Table returns a copy of the fee table.
func (s *Service) Table() FeeTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(FeeTable, len(s.table))
	for m, fs := range s.table {
		out[m] = fs
	}
	return out
}

// SortedMechanisms returns the table's mechanisms in a stable order.
func (s *Service) SortedMechanisms() []Mechanism {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Mechanism, 0, len(s.table))
	for m := range s.table {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Quote computes base + perKm*distance for the mechanism. The total is not rounded.
func (s *Service) Quote(m Mechanism, distanceKm float64) (Quote, error) {
	if !validDistance(distanceKm) {
		return Quote{}, ErrBadRequest
	}
	fs, ok := s.Structure(m)
	if !ok {
		return Quote{}, ErrNoFeeStructure
	}
	return s.quote(m, fs, distanceKm), nil
}

// SelectionQuote is the flat match-selection fee. It ignores the fee table.
func (s *Service) SelectionQuote(distanceKm float64) (Quote, error) {
	if !validDistance(distanceKm) {
		return Quote{}, ErrBadRequest
	}
	return s.quote("", FeeStructure{BaseFee: SelectionBaseFee, PerKmFee: SelectionPerKmFee}, distanceKm), nil
}

// validDistance rejects negative, NaN and infinite distances.
func validDistance(d float64) bool {
	return d >= 0 && !math.IsInf(d, 0)
}

func (s *Service) quote(m Mechanism, fs FeeStructure, distanceKm float64) Quote {
	q := Quote{
		Mechanism:  m,
		DistanceKm: distanceKm,
		BaseFee:    fs.BaseFee,
		PerKmFee:   fs.PerKmFee,
	}
	q.Total.Amount = fs.BaseFee + fs.PerKmFee*distanceKm
	q.Total.Currency = s.currency
	return q
}
