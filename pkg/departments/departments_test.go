package departments_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/deptmerge/internal/utils/ptr"
	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/normalize"
)

func TestPrimaryNormalize(t *testing.T) {
	p := departments.Primary{ID: "5", Name: "Отдел №1", Code: " ab-12 "}
	p.Normalize(normalize.Strict)

	assert.Equal(t, departments.Key{Name: "ОТДЕЛ 1", Code: "AB-12"}, p.Key())
	require.NotNil(t, p.OriginalCode)
	assert.Equal(t, " ab-12 ", *p.OriginalCode)

	// A second pass keeps the first captured original.
	p.Normalize(normalize.Strict)
	assert.Equal(t, " ab-12 ", *p.OriginalCode)
}

func TestSecondaryNormalize(t *testing.T) {
	t.Run("constructor", func(t *testing.T) {
		s := departments.NewSecondary("R100", "ОТДЕЛ 1", "AB-12")
		s.Normalize(normalize.Loose)

		assert.Equal(t, departments.Key{Name: "отдел 1", Code: "ab-12"}, s.Key())
		assert.Equal(t, "ОТДЕЛ 1", s.OriginalName)
		assert.Equal(t, "AB-12", s.OriginalCode)
	})

	t.Run("literal", func(t *testing.T) {
		s := departments.Secondary{RecordID: "R1", Name: "Сектор «А»", Code: "x-1"}
		s.Normalize(normalize.Strict)
		s.Normalize(normalize.Strict)

		assert.Equal(t, "СЕКТОР А", s.Name)
		assert.Equal(t, "Сектор «А»", s.OriginalName)
		assert.Equal(t, "x-1", s.OriginalCode)
	})
}

func TestPrimaryFlags(t *testing.T) {
	p := departments.Primary{}
	assert.False(t, p.HasID())
	assert.False(t, p.IsAssigned())

	p.Assigned = ptr.String("")
	assert.False(t, p.IsAssigned())

	p.ID = "12"
	p.Assigned = ptr.String("R1")
	assert.True(t, p.HasID())
	assert.True(t, p.IsAssigned())
}

func TestOriginString(t *testing.T) {
	assert.Equal(t, "primary", departments.OriginPrimary.String())
	assert.Equal(t, "secondary", departments.OriginSecondary.String())
	assert.Equal(t, "unknown", departments.Origin(9).String())
}
