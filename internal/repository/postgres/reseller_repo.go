// internal/repository/postgres/reseller_repo.go
package postgres

import (
	"context"
	"fmt"

	"revenda-service/internal/domain/reseller"
)

type ResellerRepository struct {
	db *DB
}

func NewResellerRepository(db *DB) *ResellerRepository {
	return &ResellerRepository{db: db}
}

func (r *ResellerRepository) AppendRecharge(ctx context.Context, rc *reseller.Recharge) error {
	query := `
		INSERT INTO reseller_recharges (
			reference, reseller_id, panel, quantity, price_per_credit, total, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		rc.Reference, rc.ResellerID, rc.Panel, rc.Quantity, rc.PricePerCredit, rc.Total, rc.Status,
	).Scan(&rc.ID, &rc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append reseller recharge: %w", err)
	}

	return nil
}

// IncrementBalance adds quantity in one statement, creating the balance row
// on the reseller's first purchase.
func (r *ResellerRepository) IncrementBalance(ctx context.Context, resellerID int64, quantity int64) (*reseller.Balance, error) {
	query := `
		INSERT INTO reseller_balances (reseller_id, credit_balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (reseller_id) DO UPDATE
		SET credit_balance = reseller_balances.credit_balance + EXCLUDED.credit_balance,
		    updated_at = NOW()
		RETURNING reseller_id, credit_balance, updated_at
	`

	var b reseller.Balance
	if err := r.db.conn(ctx).QueryRow(ctx, query, resellerID, quantity).Scan(
		&b.ResellerID, &b.CreditBalance, &b.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to increment reseller balance: %w", err)
	}

	return &b, nil
}
