package ledger

import "context"

// Repository appends to the insert-only ledgers.
type Repository interface {
	AppendCash(ctx context.Context, entry *CashEntry) error
	AppendCreditsSold(ctx context.Context, entry *CreditsSoldEntry) error
}
