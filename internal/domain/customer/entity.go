// internal/domain/customer/entity.go
package customer

import (
	"time"

	"github.com/shopspring/decimal"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusInactive SubscriptionStatus = "inactive"
)

// MaxActivePoints is the number of concurrent logins a customer may hold.
const MaxActivePoints = 3

// Subscription is one login point of a customer on a delivery panel.
type Subscription struct {
	ID             int64              `json:"id" db:"id"`
	CustomerID     int64              `json:"customer_id" db:"customer_id"`
	PanelName      string             `json:"panel_name" db:"panel_name"`
	ExpirationDate time.Time          `json:"expiration_date" db:"expiration_date"`
	Status         SubscriptionStatus `json:"status" db:"status"`
	MonthlyValue   decimal.Decimal    `json:"monthly_value" db:"monthly_value"`
	CreatedAt      time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" db:"updated_at"`
}

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}

// CommissionBalance is the referral commission accrued by a customer.
type CommissionBalance struct {
	CustomerID      int64           `json:"customer_id" db:"customer_id"`
	TotalCommission decimal.Decimal `json:"total_commission" db:"total_commission"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}
