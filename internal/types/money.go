// README: Common money value object used across modules.
package types

// Money amounts are not rounded; display layers format them.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}
