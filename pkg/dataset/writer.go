package dataset

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"

	"golang.org/x/text/transform"

	"github.com/agentstation/deptmerge/internal/utils/ptr"
	"github.com/agentstation/deptmerge/pkg/charset"
	"github.com/agentstation/deptmerge/pkg/constants"
	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/errors"
	"github.com/agentstation/deptmerge/pkg/logging"
)

// WritePrimary writes rows under the primary header. The file is written to a
// temporary file in the target directory and renamed into place, so a failed
// write leaves any previous file untouched. A rune the encoding cannot
// represent fails the write.
func WritePrimary(ctx context.Context, path, encoding string, cols PrimaryColumns, rows []departments.Primary) error {
	cols = cols.WithDefaults()
	enc, err := charset.Lookup(encoding)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()
	defer func() {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
	}()

	tw := transform.NewWriter(tempFile, enc.NewEncoder())
	w := csv.NewWriter(tw)
	w.Comma = constants.Delimiter

	if err := w.Write(cols.Header()); err != nil {
		return errors.WrapIO("write", path, err)
	}
	for i := range rows {
		if err := w.Write(record(&rows[i])); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := tw.Close(); err != nil {
		return errors.WrapIO("write", path, err)
	}
	if err := tempFile.Chmod(constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		return errors.WrapIO("close", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return errors.WrapIO("move", path, err)
	}

	logging.FromContext(ctx).Info().
		Str("file", path).
		Str("encoding", encoding).
		Int("rows", len(rows)).
		Msg("File written")
	return nil
}

func record(p *departments.Primary) []string {
	return []string{
		p.ID,
		p.Name,
		ptr.Deref(p.NameAlt),
		p.Code,
		ptr.Deref(p.AuxCode),
		ptr.Deref(p.Assigned),
	}
}
