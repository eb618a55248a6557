package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"revenda-service/internal/domain/settlement"
	xerrors "revenda-service/internal/pkg/errors"
	"revenda-service/internal/pkg/metrics"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// write is one store mutation of a workflow.
type write struct {
	name string
	fn   func(ctx context.Context) error
}

// run tracks the step report of one coordinator invocation.
type run struct {
	id        string
	kind      settlement.Kind
	steps     []settlement.Step
	startedAt time.Time
}

func newRun(kind settlement.Kind, startedAt time.Time) *run {
	return &run{
		id:        ulid.Make().String(),
		kind:      kind,
		steps:     settlement.Plan(kind),
		startedAt: startedAt,
	}
}

func (r *run) mark(name string, status settlement.StepStatus) {
	for i := range r.steps {
		if r.steps[i].Name == name {
			r.steps[i].Status = status
			return
		}
	}
}

func (r *run) complete(name string) { r.mark(name, settlement.StepCompleted) }
func (r *run) skip(name string)     { r.mark(name, settlement.StepSkipped) }

func (r *run) report() []settlement.Step {
	out := make([]settlement.Step, len(r.steps))
	copy(out, r.steps)
	return out
}

func (r *run) reference(step string) string {
	return fmt.Sprintf("%s/%d", r.id, settlement.StepNumber(r.kind, step))
}

// settle wraps a workflow body with the subject lock, the run journal and
// metrics.
func (c *Coordinator) settle(
	ctx context.Context,
	req settlement.Request,
	body func(ctx context.Context, r *run) (settlement.Result, error),
) (settlement.Result, error) {
	release, err := c.locker.Acquire(ctx, req.SubjectKey())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			c.logger.Warn("failed to release settlement lock",
				zap.String("subject", req.SubjectKey()),
				zap.Error(err),
			)
		}
	}()

	r := newRun(req.Kind(), c.now())
	result, err := body(ctx, r)
	c.finish(ctx, req, r, result, err)

	return result, err
}

// execute applies writes strictly in order and stops at the first failure.
// Without a Transactor, writes that succeeded stay applied.
func (c *Coordinator) execute(ctx context.Context, r *run, writes []write) error {
	ctx = context.WithoutCancel(ctx)

	var failed *settlement.StepFailure
	apply := func(ctx context.Context) error {
		for _, w := range writes {
			if err := w.fn(ctx); err != nil {
				r.mark(w.name, settlement.StepFailed)
				failed = &settlement.StepFailure{
					Workflow: r.kind,
					RunID:    r.id,
					Step:     settlement.StepNumber(r.kind, w.name),
					Name:     w.name,
					Cause:    err,
				}
				return failed
			}
			r.complete(w.name)
		}
		return nil
	}

	var err error
	if c.tx != nil {
		err = c.tx.WithinTx(ctx, apply)
	} else {
		err = apply(ctx)
	}
	if err == nil {
		return nil
	}

	if failed == nil {
		// The transaction itself failed to begin or commit.
		failed = &settlement.StepFailure{
			Workflow: r.kind,
			RunID:    r.id,
			Name:     "commit",
			Cause:    err,
		}
	}
	if c.tx != nil {
		failed.RolledBack = true
		for _, w := range writes {
			if s := r.status(w.name); s == settlement.StepCompleted {
				r.mark(w.name, settlement.StepPending)
			}
		}
	}
	failed.Steps = r.report()

	metrics.IncStepFailure(string(r.kind), failed.Name)
	c.logger.Error("settlement step failed",
		zap.String("run_id", r.id),
		zap.String("workflow", string(r.kind)),
		zap.Int("step", failed.Step),
		zap.String("step_name", failed.Name),
		zap.Strings("completed_steps", settlement.CompletedNames(failed.Steps)),
		zap.Bool("rolled_back", failed.RolledBack),
		zap.Error(failed.Cause),
	)

	return failed
}

func (r *run) status(name string) settlement.StepStatus {
	for _, s := range r.steps {
		if s.Name == name {
			return s.Status
		}
	}
	return ""
}

// finish journals the run. A journal failure is logged and never changes
// the settlement outcome.
func (c *Coordinator) finish(ctx context.Context, req settlement.Request, r *run, result settlement.Result, err error) {
	finishedAt := c.now()

	entry := &settlement.Run{
		ID:             r.id,
		Kind:           r.kind,
		SubjectID:      req.SubjectID(),
		Status:         settlement.RunSucceeded,
		CompletedSteps: settlement.CompletedNames(r.steps),
		StartedAt:      r.startedAt,
		FinishedAt:     finishedAt,
	}

	var failure *settlement.StepFailure
	switch {
	case err == nil:
	case errors.As(err, &failure):
		entry.Status = settlement.RunFailed
		step := failure.Step
		entry.FailedStep = &step
		entry.FailedStepName = failure.Name
		entry.RolledBack = failure.RolledBack
		entry.Error = err.Error()
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		entry.Status = settlement.RunRejected
		entry.Error = err.Error()
	default:
		entry.Status = settlement.RunFailed
		entry.Error = err.Error()
	}

	if raw, mErr := json.Marshal(req); mErr == nil {
		entry.Request = raw
	}
	if result != nil {
		if raw, mErr := json.Marshal(result); mErr == nil {
			entry.Result = raw
		}
	}

	metrics.ObserveSettlement(string(r.kind), string(entry.Status), finishedAt.Sub(r.startedAt))

	if c.runRepo == nil {
		return
	}
	if sErr := c.runRepo.Save(context.WithoutCancel(ctx), entry); sErr != nil {
		c.logger.Error("failed to journal settlement run",
			zap.String("run_id", r.id),
			zap.String("workflow", string(r.kind)),
			zap.String("status", string(entry.Status)),
			zap.Error(sErr),
		)
	}
}
