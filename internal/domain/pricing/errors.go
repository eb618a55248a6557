package pricing

import (
	"fmt"

	xerrors "revenda-service/internal/pkg/errors"
)

// OverlapError is returned when a candidate band intersects an active band of
// the same panel.
type OverlapError struct {
	Panel     string `json:"panel"`
	Candidate Band   `json:"candidate"`
	Existing  Band   `json:"existing"`
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("pricing band %s overlaps band %d %s on panel %s",
		e.Candidate, e.Existing.ID, e.Existing, e.Panel)
}

func (e *OverlapError) Unwrap() error {
	return xerrors.ErrConflict
}
