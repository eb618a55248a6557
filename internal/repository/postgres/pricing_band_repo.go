// internal/repository/postgres/pricing_band_repo.go
package postgres

import (
	"context"
	"fmt"

	"revenda-service/internal/domain/pricing"
)

type PricingBandRepository struct {
	db *DB
}

func NewPricingBandRepository(db *DB) *PricingBandRepository {
	return &PricingBandRepository{db: db}
}

func (r *PricingBandRepository) ListActiveByPanel(ctx context.Context, panel string) ([]pricing.Band, error) {
	query := `
		SELECT id, panel, min_quantity, max_quantity, price_per_credit,
		       active, created_at, updated_at
		FROM pricing_bands
		WHERE panel = $1 AND active = TRUE
		ORDER BY min_quantity ASC
	`

	rows, err := r.db.conn(ctx).Query(ctx, query, panel)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing bands: %w", err)
	}
	defer rows.Close()

	var bands []pricing.Band
	for rows.Next() {
		var b pricing.Band
		if err := rows.Scan(
			&b.ID, &b.Panel, &b.MinQuantity, &b.MaxQuantity, &b.PricePerCredit,
			&b.Active, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pricing band: %w", err)
		}
		bands = append(bands, b)
	}

	return bands, rows.Err()
}
