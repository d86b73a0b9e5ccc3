// README: Fee structures per delivery mechanism and the quote returned to callers.
package pricing

import "courier/internal/types"

type Mechanism string

const (
	MechanismCycle      Mechanism = "cycle-rider"
	MechanismEBike      Mechanism = "e-bike-rider"
	MechanismMotorcycle Mechanism = "motorcycle-rider"
)

// Mechanisms lists the known mechanisms in display order.
var Mechanisms = []Mechanism{MechanismCycle, MechanismEBike, MechanismMotorcycle}

func (m Mechanism) Valid() bool {
	for _, k := range Mechanisms {
		if k == m {
			return true
		}
	}
	return false
}

type FeeStructure struct {
	BaseFee  float64 `json:"baseFee"`
	PerKmFee float64 `json:"perKmFee"`
}

type FeeTable map[Mechanism]FeeStructure

// DefaultFeeTable is used when no fee table is configured.
func DefaultFeeTable() FeeTable {
	return FeeTable{
		MechanismCycle:      {BaseFee: 30, PerKmFee: 5},
		MechanismEBike:      {BaseFee: 40, PerKmFee: 7},
		MechanismMotorcycle: {BaseFee: 50, PerKmFee: 10},
	}
}

// Selection fee is a flat formula used when choosing among matches.
const (
	SelectionBaseFee  = 50.0
	SelectionPerKmFee = 10.0
)

type Quote struct {
	Mechanism  Mechanism   `json:"mechanism,omitempty"`
	DistanceKm float64     `json:"distanceKm"`
	BaseFee    float64     `json:"baseFee"`
	PerKmFee   float64     `json:"perKmFee"`
	Total      types.Money `json:"total"`
}
