package reconciler

import (
	"github.com/agentstation/deptmerge/pkg/departments"
)

// RestoreCodes puts the captured raw code back on primary-origin rows.
// Rows without a captured code keep their working value.
func RestoreCodes(rows []departments.Primary) {
	for i := range rows {
		row := &rows[i]
		if row.Origin != departments.OriginPrimary || row.OriginalCode == nil {
			continue
		}
		row.Code = *row.OriginalCode
	}
}

// RestoreNames overwrites the name of every row with an assigned record id
// by that record's raw secondary name. Rows whose id is unknown keep their name.
// When a record id occurs on several secondary rows the last one wins.
func RestoreNames(rows []departments.Primary, secondary []departments.Secondary) {
	names := make(map[string]string, len(secondary))
	for i := range secondary {
		names[secondary[i].RecordID] = secondary[i].OriginalName
	}

	for i := range rows {
		row := &rows[i]
		if !row.IsAssigned() {
			continue
		}
		if name, ok := names[*row.Assigned]; ok {
			row.Name = name
		}
	}
}
