// Package reconciler merges the primary department list with the secondary
// list. Primary rows are matched to secondary records on a normalized
// (name, code) key, each secondary record id is assigned at most once, and
// secondary rows nobody claimed are appended to the result.
package reconciler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/logging"
	"github.com/agentstation/deptmerge/pkg/normalize"
)

// Reconciler merges the two department lists.
type Reconciler interface {
	// Reconcile runs the full pipeline. The input slices are not modified.
	Reconcile(ctx context.Context, primary []departments.Primary, secondary []departments.Secondary) (*Result, error)

	// Check normalizes and indexes both lists and reports key conflicts
	// without matching.
	Check(ctx context.Context, primary []departments.Primary, secondary []departments.Secondary) (*CheckReport, error)

	// Policy returns the normalization policy in use.
	Policy() normalize.Policy
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	policy       normalize.Policy
	noMatchLevel zerolog.Level
	altName      *string
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		policy:       options.policy,
		noMatchLevel: options.noMatchLevel,
		altName:      options.altName,
	}, nil
}

func (r *reconciler) Policy() normalize.Policy {
	return r.policy
}

// Reconcile performs reconciliation with clean step-by-step flow.
func (r *reconciler) Reconcile(ctx context.Context, primary []departments.Primary, secondary []departments.Secondary) (*Result, error) {
	result := NewResult(r.policy)
	logger := logging.FromContext(ctx)
	logger.Info().
		Str("policy", r.policy.String()).
		Int("primary_rows", len(primary)).
		Int("secondary_rows", len(secondary)).
		Msg("Reconciliation started")

	// Step 1: Normalize private copies of both lists
	prim, sec := r.normalize(logging.WithStage(ctx, "normalize"), primary, secondary)
	inputs := CountInputs(prim, sec)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 2: Index the secondary list
	result.Index = BuildIndex(logging.WithStage(ctx, "index"), sec)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 3: Assign record ids to primary rows
	result.Outcome = Match(logging.WithStage(ctx, "match"), prim, result.Index, r.noMatchLevel)
	logger.Info().
		Int("matched", result.Outcome.Matched).
		Int("no_match", result.Outcome.NoMatch).
		Msg("Primary rows processed")
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 4: Append unclaimed secondary rows
	leftovers := Leftovers(logging.WithStage(ctx, "leftovers"), sec, result.Outcome, r.altName)
	rows := Append(prim, leftovers)

	// Step 5: Restore display values and order by id
	RestoreCodes(rows)
	RestoreNames(rows, sec)
	SortByID(rows)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 6: Report
	result.Rows = rows
	result.Unmatched = Unmatched(rows)
	result.Stats = Summarize(inputs, result.Index, result.Outcome, rows)
	result.Stats.Log(logging.FromContext(logging.WithStage(ctx, "report")))
	result.Finalize()

	logger.Info().
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation finished")

	return result, nil
}

// normalize copies both lists and normalizes the copies under the policy.
func (r *reconciler) normalize(ctx context.Context, primary []departments.Primary, secondary []departments.Secondary) ([]departments.Primary, []departments.Secondary) {
	logger := logging.FromContext(ctx)

	prim := make([]departments.Primary, len(primary))
	copy(prim, primary)
	for i := range prim {
		row := &prim[i]
		rawName, rawCode := row.Name, row.Code
		row.Normalize(r.policy)
		logger.Debug().
			Str("id", row.ID).
			Str("raw_name", rawName).
			Str("name", row.Name).
			Str("raw_code", rawCode).
			Str("code", row.Code).
			Msg("Primary row normalized")
		if row.Name == "" || row.Code == "" {
			logger.Warn().
				Str("id", row.ID).
				Str("name", row.Name).
				Str("code", row.Code).
				Msg("Primary row has empty name or code")
		}
	}

	sec := make([]departments.Secondary, len(secondary))
	copy(sec, secondary)
	for i := range sec {
		row := &sec[i]
		row.Normalize(r.policy)
		logger.Debug().
			Str("record_id", row.RecordID).
			Str("raw_name", row.OriginalName).
			Str("name", row.Name).
			Str("raw_code", row.OriginalCode).
			Str("code", row.Code).
			Msg("Secondary row normalized")
		if row.Name == "" || row.Code == "" {
			logger.Warn().
				Str("record_id", row.RecordID).
				Str("name", row.Name).
				Str("code", row.Code).
				Msg("Secondary row has empty name or code")
		}
	}

	logger.Info().
		Str("policy", r.policy.String()).
		Int("primary_rows", len(prim)).
		Int("secondary_rows", len(sec)).
		Msg("Rows normalized")

	return prim, sec
}
