// README: Route matcher and local-delivery detector. Pure filters over fetched candidates.
package route

import (
	"strings"

	"courier/internal/modules/partner"
	"courier/internal/modules/traveler"
)

// QuickMatchLimit caps the quick-match view.
const QuickMatchLimit = 3

// DestinationMatches reports whether either destination contains the other
// after lower-casing. Whitespace and punctuation are left as they are.
// Empty strings never match.
func DestinationMatches(orderDestination, travelerDestination string) bool {
	return containsEither(strings.ToLower(orderDestination), strings.ToLower(travelerDestination))
}

// IsLocal reports whether origin and destination name the same area.
func IsLocal(origin, destination string) bool {
	o := strings.ToLower(strings.TrimSpace(origin))
	d := strings.ToLower(strings.TrimSpace(destination))
	return containsEither(o, d)
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Filter keeps the items accepted by keep, in input order, stopping after
// limit items when limit > 0. The result is never nil.
func Filter[T any](items []T, limit int, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, it := range items {
		if limit > 0 && len(out) == limit {
			break
		}
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func MatchTravelers(destination string, candidates []traveler.Traveler, limit int) []traveler.Traveler {
	return Filter(candidates, limit, func(t traveler.Traveler) bool {
		return DestinationMatches(destination, t.DestinationCity)
	})
}

// PartnerServes reports whether the partner's service location lies on either
// end of the order.
func PartnerServes(origin, destination string, p partner.Partner) bool {
	loc := p.ServiceLocation()
	return IsLocal(loc, origin) || IsLocal(loc, destination)
}

func MatchPartners(origin, destination string, candidates []partner.Partner, limit int) []partner.Partner {
	return Filter(candidates, limit, func(p partner.Partner) bool {
		return PartnerServes(origin, destination, p)
	})
}
