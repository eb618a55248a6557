// internal/domain/reseller/entity.go
package reseller

import (
	"time"

	"github.com/shopspring/decimal"
)

type RechargeStatus string

const (
	RechargeStatusCompleted RechargeStatus = "completed"
)

// Balance is the number of credits a reseller holds.
type Balance struct {
	ResellerID    int64     `json:"reseller_id" db:"reseller_id"`
	CreditBalance int64     `json:"credit_balance" db:"credit_balance"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Recharge records a confirmed credit purchase by a reseller.
type Recharge struct {
	ID             int64           `json:"id" db:"id"`
	Reference      string          `json:"reference" db:"reference"`
	ResellerID     int64           `json:"reseller_id" db:"reseller_id"`
	Panel          string          `json:"panel" db:"panel"`
	Quantity       int64           `json:"quantity" db:"quantity"`
	PricePerCredit decimal.Decimal `json:"price_per_credit" db:"price_per_credit"`
	Total          decimal.Decimal `json:"total" db:"total"`
	Status         RechargeStatus  `json:"status" db:"status"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}
