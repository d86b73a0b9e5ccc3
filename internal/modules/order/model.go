// README: Order aggregate and status definitions.
package order

import (
	"time"

	"courier/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusPending   Status = "pending"
	StatusMatched   Status = "matched"
	StatusAssigned  Status = "assigned"
	StatusPickedUp  Status = "picked_up"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type DeliveryMethod string

const (
	DeliveryTraveler DeliveryMethod = "traveler"
	DeliveryPartner  DeliveryMethod = "partner"
)

type OrderInfo struct {
	ProductName           string     `json:"productName"`
	Description           string     `json:"description,omitempty"`
	OriginCity            string     `json:"originCity"`
	DestinationCity       string     `json:"destinationCity"`
	PreferredDeliveryDate *time.Time `json:"preferredDeliveryDate,omitempty"`
}

// Order references its assignee by id only; the assignee may be deleted
// or change status later without affecting the order.
type Order struct {
	ID                 types.ID       `json:"id"`
	BuyerID            types.ID       `json:"buyerId"`
	DeliveryMethod     DeliveryMethod `json:"deliveryMethod"`
	OrderInfo          OrderInfo      `json:"orderInfo"`
	AssignedTravelerID *types.ID      `json:"assignedTravelerId,omitempty"`
	AssignedPartnerID  *types.ID      `json:"assignedPartnerId,omitempty"`
	Status             Status         `json:"status"`
	StatusVersion      int            `json:"-"`
	CancelReason       *string        `json:"cancelReason,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

type Event struct {
	ID         int64     `json:"id"`
	OrderID    types.ID  `json:"orderId"`
	FromStatus Status    `json:"fromStatus"`
	ToStatus   Status    `json:"toStatus"`
	ActorType  string    `json:"actorType"`
	ActorID    *types.ID `json:"actorId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Assignment is written together with a status change.
type Assignment struct {
	Method     DeliveryMethod
	TravelerID *types.ID
	PartnerID  *types.ID
}

type Filter struct {
	Status         Status
	DeliveryMethod DeliveryMethod
	BuyerID        types.ID
}

// AllowedTransitions represents the delivery flow as code.
var AllowedTransitions = map[Status][]Status{
	StatusPending:   {StatusMatched, StatusAssigned, StatusCancelled},
	StatusMatched:   {StatusAssigned, StatusCancelled},
	StatusAssigned:  {StatusPickedUp, StatusCancelled},
	StatusPickedUp:  {StatusInTransit, StatusCancelled},
	StatusInTransit: {StatusDelivered, StatusCancelled},
	StatusDelivered: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func validMethod(m DeliveryMethod) bool {
	return m == DeliveryTraveler || m == DeliveryPartner
}
