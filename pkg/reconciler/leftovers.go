package reconciler

import (
	"context"

	"github.com/agentstation/deptmerge/internal/utils/ptr"
	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/logging"
)

// Leftovers reshapes secondary rows whose record id was never consumed into
// primary rows, in source order. Name keeps the normalized secondary name
// until RestoreNames runs; Code is the secondary's raw code.
func Leftovers(ctx context.Context, rows []departments.Secondary, outcome *MatchOutcome, altName *string) []departments.Primary {
	logger := logging.FromContext(ctx)

	var out []departments.Primary
	for i := range rows {
		row := &rows[i]
		if outcome.IsConsumed(row.RecordID) {
			continue
		}
		out = append(out, departments.Primary{
			Name:     row.Name,
			NameAlt:  clone(altName),
			Code:     row.OriginalCode,
			Assigned: ptr.String(row.RecordID),
			Origin:   departments.OriginSecondary,
		})
		logger.Info().
			Str("record_id", row.RecordID).
			Str("name", row.Name).
			Str("code", row.OriginalCode).
			Msg("Unmatched secondary row appended")
	}

	logger.Info().Int("count", len(out)).Msg("Unmatched secondary rows found")
	return out
}

// Append returns primary rows followed by leftovers in a new slice.
func Append(primary, leftovers []departments.Primary) []departments.Primary {
	merged := make([]departments.Primary, 0, len(primary)+len(leftovers))
	merged = append(merged, primary...)
	return append(merged, leftovers...)
}

func clone(s *string) *string {
	if s == nil {
		return nil
	}
	return ptr.String(*s)
}
