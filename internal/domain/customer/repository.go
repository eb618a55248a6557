package customer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionRepository reads and extends customer login points.
type SubscriptionRepository interface {
	// ListActiveByCustomer returns active subscriptions ordered by id.
	ListActiveByCustomer(ctx context.Context, customerID int64) ([]Subscription, error)
	UpdateExpiration(ctx context.Context, subscriptionID int64, expiresAt time.Time) error
}

// CommissionRepository reads and debits commission balances.
type CommissionRepository interface {
	GetBalance(ctx context.Context, customerID int64) (*CommissionBalance, error)
	// Debit atomically subtracts amount and fails with an insufficient
	// balance error when the stored balance is lower than amount.
	Debit(ctx context.Context, customerID int64, amount decimal.Decimal) (*CommissionBalance, error)
}
