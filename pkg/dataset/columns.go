package dataset

import (
	"strings"

	"github.com/agentstation/deptmerge/pkg/constants"
	"github.com/agentstation/deptmerge/pkg/errors"
)

// PrimaryColumns names the columns of the primary file. The same names are
// used as the header of both output files.
type PrimaryColumns struct {
	ID       string `mapstructure:"id" yaml:"id"`
	Name     string `mapstructure:"name" yaml:"name"`
	NameAlt  string `mapstructure:"name_alt" yaml:"name_alt"`
	Code     string `mapstructure:"code" yaml:"code"`
	AuxCode  string `mapstructure:"aux_code" yaml:"aux_code"`
	Assigned string `mapstructure:"assigned" yaml:"assigned"`
}

// SecondaryColumns names the columns of the secondary file.
type SecondaryColumns struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Code     string `mapstructure:"code" yaml:"code"`
	RecordID string `mapstructure:"record_id" yaml:"record_id"`
}

// DefaultPrimaryColumns returns the column names of the AO export.
func DefaultPrimaryColumns() PrimaryColumns {
	return PrimaryColumns{
		ID:       constants.ColumnID,
		Name:     constants.ColumnName,
		NameAlt:  constants.ColumnNameAlt,
		Code:     constants.ColumnCode,
		AuxCode:  constants.ColumnAuxCode,
		Assigned: constants.ColumnAssignedID,
	}
}

// DefaultSecondaryColumns returns the column names of the MVDR export.
func DefaultSecondaryColumns() SecondaryColumns {
	return SecondaryColumns{
		Name:     constants.ColumnSecondaryName,
		Code:     constants.ColumnSecondaryCode,
		RecordID: constants.ColumnRecordID,
	}
}

// Header returns the output header in column order.
func (c PrimaryColumns) Header() []string {
	return []string{c.ID, c.Name, c.NameAlt, c.Code, c.AuxCode, c.Assigned}
}

// WithDefaults fills empty names from DefaultPrimaryColumns.
func (c PrimaryColumns) WithDefaults() PrimaryColumns {
	d := DefaultPrimaryColumns()
	fill(&c.ID, d.ID)
	fill(&c.Name, d.Name)
	fill(&c.NameAlt, d.NameAlt)
	fill(&c.Code, d.Code)
	fill(&c.AuxCode, d.AuxCode)
	fill(&c.Assigned, d.Assigned)
	return c
}

// WithDefaults fills empty names from DefaultSecondaryColumns.
func (c SecondaryColumns) WithDefaults() SecondaryColumns {
	d := DefaultSecondaryColumns()
	fill(&c.Name, d.Name)
	fill(&c.Code, d.Code)
	fill(&c.RecordID, d.RecordID)
	return c
}

func fill(dst *string, def string) {
	if strings.TrimSpace(*dst) == "" {
		*dst = def
	}
}

// header maps column names to positions. Names compare case-insensitively
// after trimming; the first cell may carry a UTF-8 BOM.
type header map[string]int

func newHeader(cells []string) header {
	h := make(header, len(cells))
	for i, c := range cells {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		key := strings.ToLower(strings.TrimSpace(c))
		if _, dup := h[key]; !dup {
			h[key] = i
		}
	}
	return h
}

// index returns the position of name, or -1.
func (h header) index(name string) int {
	if i, ok := h[strings.ToLower(strings.TrimSpace(name))]; ok {
		return i
	}
	return -1
}

// require returns positions of the named columns, failing on the first missing one.
func (h header) require(file string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		idx[i] = h.index(name)
		if idx[i] < 0 {
			return nil, errors.NewValidationError("columns", name, "required column missing in "+file)
		}
	}
	return idx, nil
}
