package reconciler_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/deptmerge/internal/utils/ptr"
	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/normalize"
	"github.com/agentstation/deptmerge/pkg/reconciler"
)

func TestLeftovers(t *testing.T) {
	ctx, tl := testContext(t)
	sec := []departments.Secondary{
		secondary("R1", "Отдел", "a-1"),
		secondary("R2", "Сектор №2", "b-2"),
	}
	departments.NormalizeSecondary(sec, normalize.Strict)
	ix := reconciler.BuildIndex(ctx, sec)
	prim := []departments.Primary{primary("1", "ОТДЕЛ", "A-1")}
	outcome := reconciler.Match(ctx, prim, ix, zerolog.InfoLevel)

	left := reconciler.Leftovers(ctx, sec, outcome, ptr.String("nan"))

	require.Len(t, left, 1)
	row := left[0]
	assert.Equal(t, "", row.ID)
	assert.Equal(t, "СЕКТОР 2", row.Name)
	assert.Equal(t, "nan", ptr.Deref(row.NameAlt))
	assert.Equal(t, "b-2", row.Code)
	assert.Nil(t, row.AuxCode)
	assert.Equal(t, "R2", assigned(row))
	assert.Equal(t, departments.OriginSecondary, row.Origin)
	assert.Len(t, tl.EventsWithMessage("Unmatched secondary row appended"), 1)

	merged := reconciler.Append(prim, left)
	assert.Len(t, merged, 2)
	assert.Equal(t, departments.OriginPrimary, merged[0].Origin)
	assert.Equal(t, departments.OriginSecondary, merged[1].Origin)
}

func TestLeftoversRepeatedRecordID(t *testing.T) {
	ctx, _ := testContext(t)
	prim := []departments.Primary{primary("1", "Другой", "X")}
	sec := []departments.Secondary{
		secondary("R7", "Отдел", "A"),
		secondary("R7", "Отдел старый", "B"),
	}

	result, err := newReconciler(t).Reconcile(ctx, prim, sec)
	require.NoError(t, err)

	// an unconsumed record id is appended once per secondary row carrying it
	var appended []string
	for _, row := range result.Rows {
		if row.Origin == departments.OriginSecondary {
			appended = append(appended, assigned(row))
		}
	}
	assert.Equal(t, []string{"R7", "R7"}, appended)
	assert.Equal(t, 2, result.Stats.LeftoverRows)
	assert.Equal(t, 1, result.Stats.DistinctAssigned)
	assert.Equal(t, 2, result.Stats.RowsWithAssigned)
}
