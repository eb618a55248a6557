package settlement

import (
	"time"

	"revenda-service/internal/domain/commission"

	"github.com/shopspring/decimal"
)

// Result is implemented by the per-workflow results.
type Result interface {
	Reference() string
	StepReport() []Step
}

// SubscriptionExtension is the new expiration of one login point.
type SubscriptionExtension struct {
	SubscriptionID     int64     `json:"subscription_id"`
	Panel              string    `json:"panel"`
	PreviousExpiration time.Time `json:"previous_expiration"`
	NewExpiration      time.Time `json:"new_expiration"`
}

type RechargeResult struct {
	RunID          string                  `json:"run_id"`
	CustomerID     int64                   `json:"customer_id"`
	Credits        int64                   `json:"credits"`
	Panel          string                  `json:"panel"`
	NewExpirations []SubscriptionExtension `json:"new_expirations"`
	AmountPaid     decimal.Decimal         `json:"amount_paid"`
	ListPrice      decimal.Decimal         `json:"list_price"`
	QuotedPrice    decimal.Decimal         `json:"quoted_price"`
	Steps          []Step                  `json:"steps"`
}

func (r *RechargeResult) Reference() string  { return r.RunID }
func (r *RechargeResult) StepReport() []Step { return r.Steps }

type RedemptionResult struct {
	RunID            string                     `json:"run_id"`
	CustomerID       int64                      `json:"customer_id"`
	Kind             commission.RedemptionKind  `json:"kind"`
	Amount           decimal.Decimal            `json:"amount"`
	State            commission.RedemptionState `json:"state"`
	Credits          int64                      `json:"credits,omitempty"`
	NewExpirations   []SubscriptionExtension    `json:"new_expirations,omitempty"`
	RemainingBalance decimal.Decimal            `json:"remaining_balance"`
	Steps            []Step                     `json:"steps"`
}

func (r *RedemptionResult) Reference() string  { return r.RunID }
func (r *RedemptionResult) StepReport() []Step { return r.Steps }

type ResellerPurchaseResult struct {
	RunID          string          `json:"run_id"`
	ResellerID     int64           `json:"reseller_id"`
	Panel          string          `json:"panel"`
	Quantity       int64           `json:"quantity"`
	PricePerCredit decimal.Decimal `json:"price_per_credit"`
	Total          decimal.Decimal `json:"total"`
	CreditBalance  int64           `json:"credit_balance"`
	Steps          []Step          `json:"steps"`
}

func (r *ResellerPurchaseResult) Reference() string  { return r.RunID }
func (r *ResellerPurchaseResult) StepReport() []Step { return r.Steps }
