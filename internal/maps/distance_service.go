package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// DistanceService answers origin/destination distance queries with the
// Google Distance Matrix API.
type DistanceService struct {
	client *maps.Client
}

// NewDistanceService creates a DistanceService with the given API key.
// Extra client options are passed through to the maps client.
func NewDistanceService(apiKey string, opts ...maps.ClientOption) (*DistanceService, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &DistanceService{client: client}, nil
}

// Distance returns the driving distance in meters and the travel time.
func (s *DistanceService) Distance(ctx context.Context, origin, destination string) (int, time.Duration, error) {
	r := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	}

	resp, err := s.client.DistanceMatrix(ctx, r)
	if err != nil {
		return 0, 0, fmt.Errorf("maps api error: %w", err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, 0, fmt.Errorf("no distance for %q -> %q", origin, destination)
	}

	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, 0, fmt.Errorf("distance element status %s for %q -> %q", el.Status, origin, destination)
	}
	return el.Distance.Meters, el.Duration, nil
}
