package reconciler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/deptmerge/internal/utils/ptr"
	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/normalize"
	"github.com/agentstation/deptmerge/pkg/reconciler"
)

func TestRestoreCodes(t *testing.T) {
	p := primary("1", "a", " ab-12 ")
	p.Normalize(normalize.Strict)
	noOriginal := departments.Primary{ID: "2", Code: "KEEP"}
	left := departments.Primary{Code: "x-1", Origin: departments.OriginSecondary, OriginalCode: ptr.String("ignored")}

	rows := []departments.Primary{p, noOriginal, left}
	reconciler.RestoreCodes(rows)

	assert.Equal(t, " ab-12 ", rows[0].Code)
	assert.Equal(t, "KEEP", rows[1].Code)
	assert.Equal(t, "x-1", rows[2].Code)
}

func TestRestoreNames(t *testing.T) {
	sec := []departments.Secondary{
		secondary("R1", "Отдел «Север»", "A"),
		secondary("R2", "Сектор", "B"),
	}
	departments.NormalizeSecondary(sec, normalize.Strict)

	rows := []departments.Primary{
		{ID: "1", Name: "ОТДЕЛ СЕВЕР", Assigned: ptr.String("R1")},
		{ID: "2", Name: "UNASSIGNED"},
		{ID: "3", Name: "UNKNOWN ID", Assigned: ptr.String("R404")},
		{Name: "СЕКТОР", Assigned: ptr.String("R2"), Origin: departments.OriginSecondary},
	}
	reconciler.RestoreNames(rows, sec)

	assert.Equal(t, "Отдел «Север»", rows[0].Name)
	assert.Equal(t, "UNASSIGNED", rows[1].Name)
	assert.Equal(t, "UNKNOWN ID", rows[2].Name)
	assert.Equal(t, "Сектор", rows[3].Name)
}
