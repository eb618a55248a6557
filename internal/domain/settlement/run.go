package settlement

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunRejected  RunStatus = "rejected"
	RunFailed    RunStatus = "failed"
)

// Run is the journal row written for every coordinator invocation.
type Run struct {
	ID             string          `json:"id" db:"id"`
	Kind           Kind            `json:"kind" db:"kind"`
	SubjectID      int64           `json:"subject_id" db:"subject_id"`
	Status         RunStatus       `json:"status" db:"status"`
	FailedStep     *int            `json:"failed_step,omitempty" db:"failed_step"`
	FailedStepName string          `json:"failed_step_name,omitempty" db:"failed_step_name"`
	CompletedSteps pq.StringArray  `json:"completed_steps" db:"completed_steps"`
	RolledBack     bool            `json:"rolled_back" db:"rolled_back"`
	Error          string          `json:"error,omitempty" db:"error"`
	Request        json.RawMessage `json:"request,omitempty" db:"request"`
	Result         json.RawMessage `json:"result,omitempty" db:"result"`
	StartedAt      time.Time       `json:"started_at" db:"started_at"`
	FinishedAt     time.Time       `json:"finished_at" db:"finished_at"`
}

type RunRepository interface {
	Save(ctx context.Context, run *Run) error
	FindByID(ctx context.Context, id string) (*Run, error)
	ListByStatus(ctx context.Context, status RunStatus, limit int) ([]Run, error)
}

type RunListFilters struct {
	Status RunStatus `form:"status" binding:"omitempty,oneof=succeeded rejected failed"`
	Limit  int       `form:"limit" binding:"omitempty,min=1,max=500"`
}
