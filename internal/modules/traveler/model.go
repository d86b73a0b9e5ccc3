// README: Traveler aggregate and lifecycle status definitions.
package traveler

import (
	"time"

	"courier/internal/types"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusVerified  Status = "verified"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Type string

const (
	TypeInternational Type = "international"
	TypeDomestic      Type = "domestic"
)

type Traveler struct {
	ID              types.ID  `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CurrentLocation string    `json:"currentLocation"`
	DestinationCity string    `json:"destinationCity"`
	DepartureDate   time.Time `json:"departureDate"`
	TravellerType   Type      `json:"travellerType"`
	Status          Status    `json:"status"`
	StatusVersion   int       `json:"-"`
	DeviceToken     string    `json:"deviceToken,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Filter narrows List results. Empty fields are ignored.
type Filter struct {
	DestinationCity string
	CurrentLocation string
	Status          Status
}

// AllowedTransitions represents the traveler lifecycle as code.
// Completed and cancelled travelers are immutable.
var AllowedTransitions = map[Status][]Status{
	StatusPending:  {StatusActive, StatusVerified, StatusCancelled},
	StatusActive:   {StatusVerified, StatusCompleted, StatusCancelled},
	StatusVerified: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Available reports whether the traveler can still take on an order.
func (t Traveler) Available() bool {
	switch t.Status {
	case StatusCompleted, StatusCancelled:
		return false
	}
	return true
}

func validType(t Type) bool {
	return t == TypeInternational || t == TypeDomestic
}
