// README: Delivery partner aggregate; local couriers keyed by vehicle mechanism.
package partner

import (
	"time"

	"courier/internal/modules/pricing"
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

type Partner struct {
	ID              types.ID          `json:"id"`
	Name            string            `json:"name"`
	CompanyName     string            `json:"companyName,omitempty"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	City            string            `json:"city"`
	PrimaryLocation string            `json:"primaryLocation,omitempty"`
	Mechanism       pricing.Mechanism `json:"mechanism"`
	Status          Status            `json:"status"`
	StatusVersion   int               `json:"-"`
	CreatedAt       time.Time         `json:"createdAt"`
}

type Filter struct {
	City   string
	Status Status
}

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

// ServiceLocation is the area the partner operates in: the primary location
// when given, otherwise the city.
func (p Partner) ServiceLocation() string {
	if p.PrimaryLocation != "" {
		return p.PrimaryLocation
	}
	return p.City
}

func (p Partner) Available() bool {
	return p.Status != StatusCompleted && p.Status != StatusCancelled
}
