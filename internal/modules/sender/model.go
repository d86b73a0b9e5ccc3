// README: Sender aggregate; people with an item to send toward a destination city.
package sender

import (
	"time"

	"courier/internal/types"
)

type Status string

const (
	StatusOpen      Status = "open"
	StatusMatched   Status = "matched"
	StatusCancelled Status = "cancelled"
)

type Sender struct {
	ID              types.ID  `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	PickupLocation  string    `json:"pickupLocation"`
	DestinationCity string    `json:"destinationCity"`
	ItemDescription string    `json:"itemDescription"`
	ItemWeightKg    float64   `json:"itemWeightKg"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Filter struct {
	DestinationCity string
	Status          Status
}
