// internal/domain/recharge/entity.go
package recharge

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountKind string

const (
	DiscountKindPercentage  DiscountKind = "percentage"
	DiscountKindFixedAmount DiscountKind = "fixed_amount"
)

func (k DiscountKind) Valid() bool {
	return k == DiscountKindPercentage || k == DiscountKindFixedAmount
}

// Option is a catalog entry keyed by plan tier and period.
type Option struct {
	ID             int64           `json:"id" db:"id"`
	PlanTier       string          `json:"plan_tier" db:"plan_tier"`
	Period         string          `json:"period" db:"period"`
	DurationMonths int             `json:"duration_months" db:"duration_months"`
	Price          decimal.Decimal `json:"price" db:"price"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
}

// Discount is an optional promotion applied on top of an option price.
type Discount struct {
	Kind  DiscountKind    `json:"kind" binding:"required,oneof=percentage fixed_amount"`
	Value decimal.Decimal `json:"value"`
}
