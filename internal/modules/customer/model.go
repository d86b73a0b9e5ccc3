// README: Customer aggregate covering buyers, receivers, corporate and premium accounts.
package customer

import (
	"time"

	"courier/internal/types"
)

type Kind string

const (
	KindBuyer     Kind = "buyer"
	KindReceiver  Kind = "receiver"
	KindCorporate Kind = "corporate"
	KindPremium   Kind = "premium"
)

func (k Kind) Valid() bool {
	switch k {
	case KindBuyer, KindReceiver, KindCorporate, KindPremium:
		return true
	}
	return false
}

type Customer struct {
	ID          types.ID  `json:"id"`
	Kind        Kind      `json:"kind"`
	Name        string    `json:"name"`
	CompanyName string    `json:"companyName,omitempty"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	City        string    `json:"city"`
	CreatedAt   time.Time `json:"createdAt"`
}
