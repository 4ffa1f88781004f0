package keys_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/deptmerge/cmd/deptmerge/cmd/keys"
	"github.com/agentstation/deptmerge/internal/appcontext"
	"github.com/agentstation/deptmerge/pkg/normalize"
)

func TestCompute(t *testing.T) {
	results := keys.Compute("  Отдел №1 (г. Москва) ", " ab-12 ", normalize.Strict, normalize.Loose)
	require.Len(t, results, 2)

	assert.Equal(t, "strict", results[0].Policy)
	assert.Equal(t, "ОТДЕЛ 1 Г МОСКВА", results[0].Key.Name)
	assert.Equal(t, "AB-12", results[0].Key.Code)

	assert.Equal(t, "loose", results[1].Policy)
	assert.Equal(t, "отдел №1 (г. москва)", results[1].Key.Name)
	assert.Equal(t, "ab-12", results[1].Key.Code)
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		format   string
		contains []string
		wantErr  bool
	}{
		{
			name:     "all policies as table",
			args:     []string{"Отдел", "x1"},
			format:   "table",
			contains: []string{"strict", "loose", `"ОТДЕЛ"`, `"X1"`},
		},
		{
			name:     "single policy",
			args:     []string{"--policy", "loose", "Отдел", "x1"},
			format:   "table",
			contains: []string{`"отдел"`},
		},
		{
			name:    "unknown policy",
			args:    []string{"--policy", "exact", "a", "b"},
			wantErr: true,
		},
		{
			name:    "missing code",
			args:    []string{"a"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &appcontext.Mock{OutputFormatFunc: func() string { return tt.format }}
			cmd := keys.NewCommand(mock)
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out.String(), s)
			}
		})
	}
}

func TestCommandJSON(t *testing.T) {
	mock := &appcontext.Mock{OutputFormatFunc: func() string { return "json" }}
	cmd := keys.NewCommand(mock)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--policy", "strict", "a b", "c"})
	require.NoError(t, cmd.Execute())

	var results []keys.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "A B", results[0].Key.Name)
	assert.Equal(t, "C", results[0].Key.Code)
}
