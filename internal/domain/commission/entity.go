// internal/domain/commission/entity.go
package commission

import (
	"github.com/shopspring/decimal"
)

type RedemptionKind string

const (
	RedemptionToCredit RedemptionKind = "to_credit"
	RedemptionToCash   RedemptionKind = "to_cash"
)

func (k RedemptionKind) Valid() bool {
	return k == RedemptionToCredit || k == RedemptionToCash
}

type RedemptionState string

const (
	StateRequested RedemptionState = "requested"
	StateValidated RedemptionState = "validated"
	StateApplied   RedemptionState = "applied"
	StateRejected  RedemptionState = "rejected"
)

// Terminal reports whether no further transition is possible.
func (s RedemptionState) Terminal() bool {
	return s == StateApplied || s == StateRejected
}

// Redemption minimums. Fixed business constants.
var (
	MinimumToCredit = decimal.RequireFromString("35.00")
	MinimumToCash   = decimal.RequireFromString("50.00")
)

// Minimum returns the lowest redeemable amount for kind.
func Minimum(kind RedemptionKind) decimal.Decimal {
	if kind == RedemptionToCash {
		return MinimumToCash
	}
	return MinimumToCredit
}

// Redemption is one request to convert commission balance, tracked through
// requested → validated → applied, or requested → rejected.
type Redemption struct {
	CustomerID       int64           `json:"customer_id"`
	Kind             RedemptionKind  `json:"kind"`
	Amount           decimal.Decimal `json:"amount"`
	RechargeOptionID *int64          `json:"recharge_option_id,omitempty"`
	State            RedemptionState `json:"state"`
	RejectReason     string          `json:"reject_reason,omitempty"`
}
