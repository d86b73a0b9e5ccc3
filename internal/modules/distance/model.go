// README: Distance estimates between a candidate's location and an order's destination.
package distance

import (
	"context"
	"time"

	"courier/internal/types"
)

// Pair asks for the distance from Origin to Destination on behalf of a candidate.
type Pair struct {
	CandidateID types.ID
	Origin      string
	Destination string
}

type Estimate struct {
	CandidateID types.ID `json:"candidateId"`
	DistanceKm  float64  `json:"distanceKm"`
	DurationMin float64  `json:"durationMin"`
	// IsEstimated marks synthetic values produced without a maps provider.
	IsEstimated bool `json:"isEstimated"`
}

// Provider answers a single origin/destination query.
type Provider interface {
	Distance(ctx context.Context, origin, destination string) (meters int, duration time.Duration, err error)
}

// Cache stores provider answers keyed by origin and destination.
type Cache interface {
	Get(ctx context.Context, origin, destination string) (Estimate, bool, error)
	Set(ctx context.Context, origin, destination string, e Estimate) error
}

// Synthetic placeholder values for the i-th pair when no provider is configured.
const (
	syntheticBaseKm   = 5.0
	syntheticStepKm   = 2.0
	syntheticBaseMin  = 15.0
	syntheticStepMin  = 5.0
	defaultConcurrent = 5
)
