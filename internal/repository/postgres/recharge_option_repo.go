// internal/repository/postgres/recharge_option_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"revenda-service/internal/domain/recharge"
	xerrors "revenda-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type RechargeOptionRepository struct {
	db *DB
}

func NewRechargeOptionRepository(db *DB) *RechargeOptionRepository {
	return &RechargeOptionRepository{db: db}
}

// FindByID retrieves a catalog option by ID
func (r *RechargeOptionRepository) FindByID(ctx context.Context, id int64) (*recharge.Option, error) {
	query := `
		SELECT id, plan_tier, period, duration_months, price, created_at
		FROM recharge_options
		WHERE id = $1
	`

	var opt recharge.Option
	err := r.db.conn(ctx).QueryRow(ctx, query, id).Scan(
		&opt.ID, &opt.PlanTier, &opt.Period, &opt.DurationMonths, &opt.Price, &opt.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find recharge option: %w", err)
	}

	return &opt, nil
}
