package reconciler

import (
	"context"

	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/logging"
)

// CheckReport lists the key conflicts found in both lists before matching.
type CheckReport struct {
	Inputs          InputCounts `json:"inputs" yaml:"inputs"`
	IndexSize       int         `json:"index_size" yaml:"index_size"`
	IndexCollisions int         `json:"index_collisions" yaml:"index_collisions"`

	// MultiKeyRecords are secondary record ids seen under several keys.
	MultiKeyRecords []string `json:"multi_key_records" yaml:"multi_key_records"`

	// DuplicatePrimary groups primary rows sharing a key. Only the first row
	// of each group can receive a record id.
	DuplicatePrimary []KeyGroup `json:"duplicate_primary" yaml:"duplicate_primary"`
}

// KeyGroup is a key shared by several primary rows, with their ids in order.
type KeyGroup struct {
	Key departments.Key `json:"key" yaml:"key"`
	IDs []string        `json:"ids" yaml:"ids"`
}

// HasConflicts reports whether anything would make matching lossy.
func (c *CheckReport) HasConflicts() bool {
	return c.IndexCollisions > 0 || len(c.MultiKeyRecords) > 0 || len(c.DuplicatePrimary) > 0
}

func (r *reconciler) Check(ctx context.Context, primary []departments.Primary, secondary []departments.Secondary) (*CheckReport, error) {
	prim, sec := r.normalize(logging.WithStage(ctx, "normalize"), primary, secondary)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ix := BuildIndex(logging.WithStage(ctx, "index"), sec)
	report := &CheckReport{
		Inputs:           CountInputs(prim, sec),
		IndexSize:        ix.Size(),
		IndexCollisions:  ix.Collisions(),
		MultiKeyRecords:  ix.MultiKeyRecords(),
		DuplicatePrimary: DuplicateKeys(prim),
	}

	logging.FromContext(ctx).Info().
		Int("index_collisions", report.IndexCollisions).
		Int("multi_key_records", len(report.MultiKeyRecords)).
		Int("duplicate_primary_keys", len(report.DuplicatePrimary)).
		Msg("Check finished")

	return report, nil
}

// DuplicateKeys groups normalized primary rows by key and returns the groups
// with more than one row, ordered by first occurrence.
func DuplicateKeys(rows []departments.Primary) []KeyGroup {
	index := make(map[departments.Key]int)
	var groups []KeyGroup
	for i := range rows {
		key := rows[i].Key()
		if g, ok := index[key]; ok {
			groups[g].IDs = append(groups[g].IDs, rows[i].ID)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, KeyGroup{Key: key, IDs: []string{rows[i].ID}})
	}

	var dups []KeyGroup
	for _, g := range groups {
		if len(g.IDs) > 1 {
			dups = append(dups, g)
		}
	}
	return dups
}
