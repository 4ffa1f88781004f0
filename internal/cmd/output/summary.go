package output

import (
	"strconv"
	"strings"

	"github.com/agentstation/deptmerge/pkg/reconciler"
)

// MergeSummary is the console report of a merge run.
type MergeSummary struct {
	RunID     string           `json:"run_id" yaml:"run_id"`
	Policy    string           `json:"policy" yaml:"policy"`
	Output    string           `json:"output" yaml:"output"`
	Unmatched string           `json:"unmatched_output" yaml:"unmatched_output"`
	Stats     reconciler.Stats `json:"stats" yaml:"stats"`
}

// StatsTable renders summary figures as a two-column table.
func StatsTable(stats reconciler.Stats) Data {
	data := Data{
		Headers:         []string{"Figure", "Count"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	for _, line := range stats.Lines() {
		data.Rows = append(data.Rows, []string{line.Label, strconv.Itoa(line.Value)})
	}
	return data
}

// CheckTable renders the conflicts found by a check as a table.
func CheckTable(report *reconciler.CheckReport) Data {
	data := Data{
		Headers: []string{"Kind", "Name", "Code", "Ids"},
	}
	for _, g := range report.DuplicatePrimary {
		data.Rows = append(data.Rows, []string{"duplicate primary key", g.Key.Name, g.Key.Code, strings.Join(g.IDs, ", ")})
	}
	for _, id := range report.MultiKeyRecords {
		data.Rows = append(data.Rows, []string{"record id under several keys", "", "", id})
	}
	return data
}
