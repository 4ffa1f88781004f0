package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/normalize"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	// Rows is the merged dataset, sorted by id.
	Rows []departments.Primary

	// Unmatched holds primary rows with an id that got no record id.
	Unmatched []departments.Primary

	Stats   Stats
	Outcome *MatchOutcome
	Index   *Index

	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the run.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Policy    normalize.Policy
}

// NewResult creates a new Result stamped with the current time.
func NewResult(policy normalize.Policy) *Result {
	return &Result{
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			Policy:    policy,
		},
	}
}

// Finalize calculates final timing.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
}

// Summary returns a one-line summary of the result.
func (r *Result) Summary() string {
	return fmt.Sprintf("rows: %d, assigned: %d, appended: %d, unmatched: %d, duration: %v",
		r.Stats.TotalRows,
		r.Stats.PrimaryAssigned,
		r.Stats.LeftoverRows,
		r.Stats.Unmatched,
		r.Metadata.Duration)
}
