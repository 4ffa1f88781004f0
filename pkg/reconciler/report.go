package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/deptmerge/pkg/departments"
)

// Stats summarizes one reconciliation run.
type Stats struct {
	// Inputs
	PrimaryRows          int `json:"primary_rows" yaml:"primary_rows"`
	SecondaryRows        int `json:"secondary_rows" yaml:"secondary_rows"`
	PrimaryWithID        int `json:"primary_with_id" yaml:"primary_with_id"`
	PrimaryDuplicateKeys int `json:"primary_duplicate_keys" yaml:"primary_duplicate_keys"`

	// Index
	IndexSize       int `json:"index_size" yaml:"index_size"`
	IndexCollisions int `json:"index_collisions" yaml:"index_collisions"`
	MultiKeyRecords int `json:"multi_key_records" yaml:"multi_key_records"`

	// Matching
	PrimaryAssigned   int `json:"primary_assigned" yaml:"primary_assigned"`
	NoMatch           int `json:"no_match" yaml:"no_match"`
	DuplicateKey      int `json:"duplicate_key" yaml:"duplicate_key"`
	ClaimedByOtherKey int `json:"claimed_by_other_key" yaml:"claimed_by_other_key"`

	// Merged dataset
	LeftoverRows     int `json:"leftover_rows" yaml:"leftover_rows"`
	TotalRows        int `json:"total_rows" yaml:"total_rows"`
	RowsWithID       int `json:"rows_with_id" yaml:"rows_with_id"`
	RowsWithAuxCode  int `json:"rows_with_aux_code" yaml:"rows_with_aux_code"`
	RowsWithAssigned int `json:"rows_with_assigned" yaml:"rows_with_assigned"`
	DistinctAssigned int `json:"distinct_assigned" yaml:"distinct_assigned"`
	Consumed         int `json:"consumed" yaml:"consumed"`
	Unmatched        int `json:"unmatched" yaml:"unmatched"`
}

// InputCounts are the counts taken before matching.
type InputCounts struct {
	PrimaryRows          int `json:"primary_rows" yaml:"primary_rows"`
	SecondaryRows        int `json:"secondary_rows" yaml:"secondary_rows"`
	PrimaryWithID        int `json:"primary_with_id" yaml:"primary_with_id"`
	PrimaryDuplicateKeys int `json:"primary_duplicate_keys" yaml:"primary_duplicate_keys"`
}

// CountInputs counts rows of both lists. Primary rows must already be normalized
// for duplicate keys to be detected.
func CountInputs(primary []departments.Primary, secondary []departments.Secondary) InputCounts {
	counts := InputCounts{
		PrimaryRows:   len(primary),
		SecondaryRows: len(secondary),
	}
	seen := make(map[departments.Key]struct{}, len(primary))
	for i := range primary {
		if primary[i].HasID() {
			counts.PrimaryWithID++
		}
		key := primary[i].Key()
		if _, dup := seen[key]; dup {
			counts.PrimaryDuplicateKeys++
			continue
		}
		seen[key] = struct{}{}
	}
	return counts
}

// Summarize computes run statistics. It does not modify rows.
func Summarize(in InputCounts, ix *Index, outcome *MatchOutcome, rows []departments.Primary) Stats {
	stats := Stats{
		PrimaryRows:          in.PrimaryRows,
		SecondaryRows:        in.SecondaryRows,
		PrimaryWithID:        in.PrimaryWithID,
		PrimaryDuplicateKeys: in.PrimaryDuplicateKeys,
		TotalRows:            len(rows),
	}
	if ix != nil {
		stats.IndexSize = ix.Size()
		stats.IndexCollisions = ix.Collisions()
		stats.MultiKeyRecords = len(ix.MultiKeyRecords())
	}
	if outcome != nil {
		stats.PrimaryAssigned = outcome.Matched
		stats.NoMatch = outcome.NoMatch
		stats.DuplicateKey = outcome.DuplicateKey
		stats.ClaimedByOtherKey = outcome.ClaimedByOtherKey
		stats.Consumed = len(outcome.Consumed)
	}

	distinct := make(map[string]struct{})
	for i := range rows {
		row := &rows[i]
		if row.Origin == departments.OriginSecondary {
			stats.LeftoverRows++
		}
		if row.HasID() {
			stats.RowsWithID++
		}
		if row.AuxCode != nil && *row.AuxCode != "" {
			stats.RowsWithAuxCode++
		}
		if row.IsAssigned() {
			stats.RowsWithAssigned++
			distinct[*row.Assigned] = struct{}{}
		}
		if isUnmatched(row) {
			stats.Unmatched++
		}
	}
	stats.DistinctAssigned = len(distinct)

	return stats
}

// Unmatched returns primary-origin rows that carry an id but got no record id.
func Unmatched(rows []departments.Primary) []departments.Primary {
	var out []departments.Primary
	for i := range rows {
		if isUnmatched(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}

func isUnmatched(row *departments.Primary) bool {
	return row.Origin == departments.OriginPrimary && row.HasID() && !row.IsAssigned()
}

// Log writes the summary one line per figure.
func (s Stats) Log(logger *zerolog.Logger) {
	logger.Info().Msg("Summary")
	for _, line := range s.Lines() {
		logger.Info().Int(line.Key, line.Value).Msg(line.Label)
	}
	logger.Info().
		Int("distinct_assigned", s.DistinctAssigned).
		Int("secondary_rows", s.SecondaryRows).
		Msg("Distinct assigned record ids vs secondary rows")
}

// StatLine is one labelled figure of a summary.
type StatLine struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
}

// Lines returns the summary figures in reporting order.
func (s Stats) Lines() []StatLine {
	return []StatLine{
		{"primary_rows", "Primary rows", s.PrimaryRows},
		{"secondary_rows", "Secondary rows", s.SecondaryRows},
		{"primary_with_id", "Primary rows with id", s.PrimaryWithID},
		{"primary_duplicate_keys", "Primary duplicate keys", s.PrimaryDuplicateKeys},
		{"index_size", "Index size", s.IndexSize},
		{"index_collisions", "Index collisions", s.IndexCollisions},
		{"multi_key_records", "Record ids under several keys", s.MultiKeyRecords},
		{"primary_assigned", "Primary rows assigned", s.PrimaryAssigned},
		{"no_match", "Primary rows without match", s.NoMatch},
		{"duplicate_key", "Skipped, duplicate key", s.DuplicateKey},
		{"claimed_by_other_key", "Skipped, claimed by other key", s.ClaimedByOtherKey},
		{"leftover_rows", "Secondary rows appended", s.LeftoverRows},
		{"total_rows", "Rows in result", s.TotalRows},
		{"rows_with_id", "Rows with id", s.RowsWithID},
		{"rows_with_aux_code", "Rows with aux code", s.RowsWithAuxCode},
		{"rows_with_assigned", "Rows with record id", s.RowsWithAssigned},
		{"distinct_assigned", "Distinct record ids", s.DistinctAssigned},
		{"consumed", "Record ids consumed", s.Consumed},
		{"unmatched", "Unmatched rows with id", s.Unmatched},
	}
}
