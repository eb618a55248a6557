package pricing

import "context"

type Repository interface {
	// ListActiveByPanel returns active bands ordered by min_quantity.
	ListActiveByPanel(ctx context.Context, panel string) ([]Band, error)
}
