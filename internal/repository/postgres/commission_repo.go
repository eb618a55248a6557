// internal/repository/postgres/commission_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"revenda-service/internal/domain/customer"
	xerrors "revenda-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type CommissionRepository struct {
	db *DB
}

func NewCommissionRepository(db *DB) *CommissionRepository {
	return &CommissionRepository{db: db}
}

func (r *CommissionRepository) GetBalance(ctx context.Context, customerID int64) (*customer.CommissionBalance, error) {
	query := `
		SELECT customer_id, total_commission, updated_at
		FROM commission_balances
		WHERE customer_id = $1
	`

	var b customer.CommissionBalance
	err := r.db.conn(ctx).QueryRow(ctx, query, customerID).Scan(&b.CustomerID, &b.TotalCommission, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get commission balance: %w", err)
	}

	return &b, nil
}

// Debit subtracts amount only while the stored balance covers it, so two
// concurrent redemptions can never drive it negative.
func (r *CommissionRepository) Debit(ctx context.Context, customerID int64, amount decimal.Decimal) (*customer.CommissionBalance, error) {
	query := `
		UPDATE commission_balances
		SET total_commission = total_commission - $2, updated_at = NOW()
		WHERE customer_id = $1 AND total_commission >= $2
		RETURNING customer_id, total_commission, updated_at
	`

	var b customer.CommissionBalance
	err := r.db.conn(ctx).QueryRow(ctx, query, customerID, amount).Scan(&b.CustomerID, &b.TotalCommission, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.Validation(xerrors.CodeInsufficientBalance,
			"commission balance of customer %d does not cover %s", customerID, amount.StringFixed(2))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to debit commission: %w", err)
	}

	return &b, nil
}
