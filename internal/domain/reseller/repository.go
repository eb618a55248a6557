package reseller

import "context"

type Repository interface {
	AppendRecharge(ctx context.Context, recharge *Recharge) error
	// IncrementBalance atomically adds quantity to the reseller's credit balance.
	IncrementBalance(ctx context.Context, resellerID int64, quantity int64) (*Balance, error)
}
