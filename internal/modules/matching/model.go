// README: Views produced by matching: the board and the match-selection screen.
package matching

import (
	"courier/internal/modules/distance"
	"courier/internal/modules/order"
	"courier/internal/modules/partner"
	"courier/internal/modules/pricing"
	"courier/internal/modules/traveler"
)

// BoardLoadError is shown when the board could not fetch its data.
const BoardLoadError = "Could not load trips and orders. Please try again."

// PartnerOption is a partner candidate for a local order. Distance and Fee
// are nil when they could not be determined.
type PartnerOption struct {
	Partner  partner.Partner    `json:"partner"`
	Distance *distance.Estimate `json:"distance"`
	Fee      *pricing.Quote     `json:"fee"`
}

type BoardOrder struct {
	Order     order.Order         `json:"order"`
	Local     bool                `json:"local"`
	Travelers []traveler.Traveler `json:"travelers"`
	Partners  []PartnerOption     `json:"partners"`
}

// Board is the trips-and-orders view. Error carries a user-visible message
// when loading failed; the lists are empty in that case.
type Board struct {
	Orders    []BoardOrder        `json:"orders"`
	Travelers []traveler.Traveler `json:"travelers"`
	Error     string              `json:"error,omitempty"`
}

// Selection is the match-selection view for one order.
type Selection struct {
	Order     order.Order         `json:"order"`
	Local     bool                `json:"local"`
	Travelers []traveler.Traveler `json:"travelers"`
	Partners  []PartnerOption     `json:"partners"`
}
