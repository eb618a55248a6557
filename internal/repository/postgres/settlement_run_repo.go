// internal/repository/postgres/settlement_run_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"revenda-service/internal/domain/settlement"
	xerrors "revenda-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"
)

type SettlementRunRepository struct {
	db *DB
}

func NewSettlementRunRepository(db *DB) *SettlementRunRepository {
	return &SettlementRunRepository{db: db}
}

const runColumns = `
	id, kind, subject_id, status, failed_step, failed_step_name,
	completed_steps, rolled_back, error, request, result, started_at, finished_at
`

// Save journals a run. Runs are written once, outside any workflow
// transaction.
func (r *SettlementRunRepository) Save(ctx context.Context, run *settlement.Run) error {
	query := `
		INSERT INTO settlement_runs (` + runColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`

	_, err := r.db.pool.Exec(ctx, query,
		run.ID, run.Kind, run.SubjectID, run.Status, run.FailedStep, nullString(run.FailedStepName),
		[]string(run.CompletedSteps), run.RolledBack, nullString(run.Error),
		nullJSON(run.Request), nullJSON(run.Result), run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save settlement run: %w", err)
	}

	return nil
}

func (r *SettlementRunRepository) FindByID(ctx context.Context, id string) (*settlement.Run, error) {
	query := `SELECT ` + runColumns + ` FROM settlement_runs WHERE id = $1`

	run, err := scanRun(r.db.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find settlement run: %w", err)
	}

	return run, nil
}

// ListByStatus returns runs with the given status, newest first.
func (r *SettlementRunRepository) ListByStatus(ctx context.Context, status settlement.RunStatus, limit int) ([]settlement.Run, error) {
	query := `
		SELECT ` + runColumns + `
		FROM settlement_runs
		WHERE status = $1
		ORDER BY started_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.pool.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlement runs: %w", err)
	}
	defer rows.Close()

	var runs []settlement.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement run: %w", err)
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

func scanRun(row pgx.Row) (*settlement.Run, error) {
	var (
		run            settlement.Run
		failedStepName *string
		errText        *string
		completed      []string
		request        []byte
		result         []byte
	)

	if err := row.Scan(
		&run.ID, &run.Kind, &run.SubjectID, &run.Status, &run.FailedStep, &failedStepName,
		&completed, &run.RolledBack, &errText, &request, &result, &run.StartedAt, &run.FinishedAt,
	); err != nil {
		return nil, err
	}

	run.CompletedSteps = pq.StringArray(completed)
	if failedStepName != nil {
		run.FailedStepName = *failedStepName
	}
	if errText != nil {
		run.Error = *errText
	}
	run.Request = request
	run.Result = result

	return &run, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
