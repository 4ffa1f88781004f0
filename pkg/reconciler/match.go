package reconciler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/deptmerge/internal/utils/ptr"
	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/logging"
)

// Duplicate-claim reasons reported by Match.
const (
	// ReasonDuplicateKey means an earlier primary row with the same key took the record id.
	ReasonDuplicateKey = "duplicate_key"
	// ReasonClaimedByOtherKey means the record id was taken through a different key.
	ReasonClaimedByOtherKey = "claimed_by_other_key"
)

// MatchOutcome is what Match learned while assigning record ids.
type MatchOutcome struct {
	// Consumed lists assigned record ids in assignment order.
	Consumed []string
	// UsedKeys holds the keys that produced an assignment.
	UsedKeys map[departments.Key]struct{}

	Matched           int
	NoMatch           int
	DuplicateKey      int
	ClaimedByOtherKey int

	consumed map[string]struct{}
}

func newMatchOutcome() *MatchOutcome {
	return &MatchOutcome{
		UsedKeys: make(map[departments.Key]struct{}),
		consumed: make(map[string]struct{}),
	}
}

// IsConsumed reports whether recordID was assigned to a primary row.
func (o *MatchOutcome) IsConsumed(recordID string) bool {
	_, ok := o.consumed[recordID]
	return ok
}

func (o *MatchOutcome) consume(recordID string, key departments.Key) {
	o.consumed[recordID] = struct{}{}
	o.Consumed = append(o.Consumed, recordID)
	o.UsedKeys[key] = struct{}{}
	o.Matched++
}

// Match assigns record ids from ix to normalized primary rows, in row order.
// A record id goes to the first row that claims it; later claimants stay
// unassigned. Any Assigned value loaded from input is cleared first.
func Match(ctx context.Context, rows []departments.Primary, ix *Index, noMatchLevel zerolog.Level) *MatchOutcome {
	logger := logging.FromContext(ctx)
	outcome := newMatchOutcome()

	for i := range rows {
		row := &rows[i]
		row.Assigned = nil
		key := row.Key()

		entry, ok := ix.Lookup(key)
		if !ok {
			outcome.NoMatch++
			logger.WithLevel(noMatchLevel).
				Str("id", row.ID).
				Str("name", key.Name).
				Str("code", key.Code).
				Msg("No match")
			continue
		}

		if !outcome.IsConsumed(entry.RecordID) {
			row.Assigned = ptr.String(entry.RecordID)
			outcome.consume(entry.RecordID, key)
			logger.Info().
				Str("id", row.ID).
				Str("record_id", entry.RecordID).
				Msg("Matched")
			continue
		}

		reason := ReasonClaimedByOtherKey
		if _, used := outcome.UsedKeys[key]; used {
			reason = ReasonDuplicateKey
			outcome.DuplicateKey++
		} else {
			outcome.ClaimedByOtherKey++
		}
		logger.Warn().
			Str("id", row.ID).
			Str("name", key.Name).
			Str("code", key.Code).
			Str("record_id", entry.RecordID).
			Str("reason", reason).
			Msg("Record id already assigned, row skipped")
	}

	return outcome
}
