// internal/repository/postgres/ledger_repo.go
package postgres

import (
	"context"
	"fmt"

	"revenda-service/internal/domain/ledger"
)

// LedgerRepository appends to the cash book and the credits-sold audit
// table. Both are insert-only.
type LedgerRepository struct {
	db *DB
}

func NewLedgerRepository(db *DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) AppendCash(ctx context.Context, entry *ledger.CashEntry) error {
	query := `
		INSERT INTO caixa (reference, data, descricao, entrada, saida)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		entry.Reference, entry.Date, entry.Description, entry.Inflow, entry.Outflow,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append cash entry: %w", err)
	}

	return nil
}

func (r *LedgerRepository) AppendCreditsSold(ctx context.Context, entry *ledger.CreditsSoldEntry) error {
	query := `
		INSERT INTO creditos_vendidos (reference, data, descricao, painel, quantidade_creditos)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.conn(ctx).QueryRow(ctx, query,
		entry.Reference, entry.Date, entry.Description, entry.Panel, entry.Credits,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append credits sold entry: %w", err)
	}

	return nil
}
