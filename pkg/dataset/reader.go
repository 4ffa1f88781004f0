// Package dataset reads and writes the semicolon-delimited department files.
// Files are decoded from the configured encoding up front, so a file that
// does not match its declared encoding fails before any row is parsed.
package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/agentstation/deptmerge/internal/utils/ptr"
	"github.com/agentstation/deptmerge/pkg/charset"
	"github.com/agentstation/deptmerge/pkg/constants"
	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/errors"
	"github.com/agentstation/deptmerge/pkg/logging"
)

// table is a decoded file: header plus data rows.
type table struct {
	path   string
	header header
	width  int
	rows   [][]string
}

// cell returns the value at column i of row, or "" past the end of a short row.
func (t *table) cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func readTable(ctx context.Context, path, encoding string) (*table, error) {
	logger := logging.FromContext(ctx)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	text, err := charset.Decode(encoding, raw)
	if err != nil {
		return nil, &errors.ParseError{
			Format:  "csv",
			File:    path,
			Message: fmt.Sprintf("content is not valid %s", encoding),
			Err:     err,
		}
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = constants.Delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	cells, err := r.Read()
	if err == io.EOF {
		return nil, &errors.ParseError{Format: "csv", File: path, Message: "file is empty"}
	}
	if err != nil {
		return nil, parseError(path, err)
	}

	t := &table{path: path, header: newHeader(cells), width: len(cells)}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseError(path, err)
		}
		if len(row) > t.width {
			line, _ := r.FieldPos(0)
			return nil, &errors.ParseError{
				Format:  "csv",
				File:    path,
				Line:    line,
				Message: fmt.Sprintf("expected %d fields, saw %d", t.width, len(row)),
			}
		}
		t.rows = append(t.rows, row)
	}

	logger.Info().
		Str("file", path).
		Str("encoding", encoding).
		Int("rows", len(t.rows)).
		Msg("File read")
	return t, nil
}

func parseError(path string, err error) error {
	pe := &errors.ParseError{Format: "csv", File: path, Message: err.Error(), Err: err}
	var ce *csv.ParseError
	if errors.As(err, &ce) {
		pe.Line = ce.Line
		pe.Message = ce.Err.Error()
	}
	return pe
}

// ReadPrimary loads the primary list. ID, Name and Code columns are required;
// NameAlt, AuxCode and Assigned may be absent. Empty optional cells load as nil.
func ReadPrimary(ctx context.Context, path, encoding string, cols PrimaryColumns) ([]departments.Primary, error) {
	cols = cols.WithDefaults()
	t, err := readTable(ctx, path, encoding)
	if err != nil {
		return nil, err
	}

	req, err := t.header.require(path, cols.ID, cols.Name, cols.Code)
	if err != nil {
		return nil, err
	}
	idCol, nameCol, codeCol := req[0], req[1], req[2]
	altCol := t.header.index(cols.NameAlt)
	auxCol := t.header.index(cols.AuxCode)
	assignedCol := t.header.index(cols.Assigned)

	rows := make([]departments.Primary, 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, departments.Primary{
			ID:       t.cell(r, idCol),
			Name:     t.cell(r, nameCol),
			NameAlt:  ptr.StringOrNil(t.cell(r, altCol)),
			Code:     t.cell(r, codeCol),
			AuxCode:  ptr.StringOrNil(t.cell(r, auxCol)),
			Assigned: ptr.StringOrNil(t.cell(r, assignedCol)),
			Origin:   departments.OriginPrimary,
		})
	}
	return rows, nil
}

// ReadSecondary loads the secondary list. All three columns are required.
func ReadSecondary(ctx context.Context, path, encoding string, cols SecondaryColumns) ([]departments.Secondary, error) {
	cols = cols.WithDefaults()
	t, err := readTable(ctx, path, encoding)
	if err != nil {
		return nil, err
	}

	req, err := t.header.require(path, cols.Name, cols.Code, cols.RecordID)
	if err != nil {
		return nil, err
	}

	rows := make([]departments.Secondary, 0, len(t.rows))
	for _, r := range t.rows {
		rows = append(rows, departments.NewSecondary(
			t.cell(r, req[2]),
			t.cell(r, req[0]),
			t.cell(r, req[1]),
		))
	}
	return rows, nil
}
