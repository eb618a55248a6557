// internal/repository/postgres/subscription_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"revenda-service/internal/domain/customer"
	xerrors "revenda-service/internal/pkg/errors"
)

type SubscriptionRepository struct {
	db *DB
}

func NewSubscriptionRepository(db *DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// ListActiveByCustomer returns the customer's active login points, lowest id
// first.
func (r *SubscriptionRepository) ListActiveByCustomer(ctx context.Context, customerID int64) ([]customer.Subscription, error) {
	query := `
		SELECT id, customer_id, panel_name, expiration_date, status,
		       monthly_value, created_at, updated_at
		FROM subscriptions
		WHERE customer_id = $1 AND status = $2
		ORDER BY id ASC
	`

	rows, err := r.db.conn(ctx).Query(ctx, query, customerID, customer.SubscriptionStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []customer.Subscription
	for rows.Next() {
		var s customer.Subscription
		if err := rows.Scan(
			&s.ID, &s.CustomerID, &s.PanelName, &s.ExpirationDate, &s.Status,
			&s.MonthlyValue, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}

	return subs, rows.Err()
}

// UpdateExpiration sets a new expiration date.
func (r *SubscriptionRepository) UpdateExpiration(ctx context.Context, subscriptionID int64, expiresAt time.Time) error {
	query := `
		UPDATE subscriptions
		SET expiration_date = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.conn(ctx).Exec(ctx, query, expiresAt, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to update expiration: %w", err)
	}

	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return nil
}
