package check_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/deptmerge/cmd/deptmerge/cmd/check"
	"github.com/agentstation/deptmerge/internal/appcontext"
	"github.com/agentstation/deptmerge/internal/config"
	"github.com/agentstation/deptmerge/pkg/reconciler"
)

func newMock(t *testing.T, format, primary, secondary string) *appcontext.Mock {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "ao.csv")
	s := filepath.Join(dir, "mvdr.csv")
	require.NoError(t, os.WriteFile(p, []byte(primary), 0o644))
	require.NoError(t, os.WriteFile(s, []byte(secondary), 0o644))
	return &appcontext.Mock{
		ConfigValue:      &config.Config{Primary: p, Secondary: s},
		OutputFormatFunc: func() string { return format },
	}
}

const conflicting = "departmentname;departmentcode;recordid\n" +
	"A;1;10\n" +
	"a;1;11\n" +
	"B;2;10\n"

func TestExecuteReportsConflicts(t *testing.T) {
	mock := newMock(t, "json",
		"id;name_ru;regula_code\n1;A;1\n2;A;1\n3;C;3\n",
		conflicting)

	var out bytes.Buffer
	require.NoError(t, check.Execute(context.Background(), mock, false, &out))

	var report reconciler.CheckReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 3, report.Inputs.PrimaryRows)
	assert.Equal(t, 1, report.IndexCollisions)
	assert.Equal(t, 2, report.IndexSize)
	assert.Equal(t, []string{"10"}, report.MultiKeyRecords)
	require.Len(t, report.DuplicatePrimary, 1)
	assert.Equal(t, []string{"1", "2"}, report.DuplicatePrimary[0].IDs)
}

func TestExecuteStrict(t *testing.T) {
	mock := newMock(t, "table", "id;name_ru;regula_code\n1;A;1\n", conflicting)

	var out bytes.Buffer
	err := check.Execute(context.Background(), mock, true, &out)
	assert.ErrorIs(t, err, check.ErrConflicts)
	assert.Contains(t, out.String(), "1 secondary key collisions, 0 primary keys shared by several rows")
}

func TestExecuteClean(t *testing.T) {
	mock := newMock(t, "table",
		"id;name_ru;regula_code\n1;A;1\n",
		"departmentname;departmentcode;recordid\nA;1;10\n")

	var out bytes.Buffer
	require.NoError(t, check.Execute(context.Background(), mock, true, &out))
	assert.Contains(t, out.String(), "No key conflicts in 1 primary and 1 secondary rows")
}
