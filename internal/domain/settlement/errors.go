package settlement

import (
	"fmt"
)

// StepFailure reports a store write that failed partway through a workflow.
// Steps before Step are left applied unless RolledBack is set.
type StepFailure struct {
	Workflow   Kind   `json:"workflow"`
	RunID      string `json:"run_id"`
	Step       int    `json:"step"`
	Name       string `json:"name"`
	Steps      []Step `json:"steps"`
	RolledBack bool   `json:"rolled_back"`
	Cause      error  `json:"-"`
}

func (e *StepFailure) Error() string {
	return fmt.Sprintf("%s settlement %s failed at step %d (%s): %v", e.Workflow, e.RunID, e.Step, e.Name, e.Cause)
}

func (e *StepFailure) Unwrap() error {
	return e.Cause
}

// Completed returns the steps that were applied before the failure.
func (e *StepFailure) Completed() []Step {
	out := make([]Step, 0, len(e.Steps))
	for _, s := range e.Steps {
		if s.Status == StepCompleted {
			out = append(out, s)
		}
	}
	return out
}
