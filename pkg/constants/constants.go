// Package constants provides shared constants used throughout deptmerge.
// This includes file names, column names, permissions and other values
// that should be consistent across the CLI and the library packages.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default file names, matching the names used by the operators' exports.
const (
	// DefaultPrimaryFile is the AO department export.
	DefaultPrimaryFile = "AO db prod.csv"

	// DefaultSecondaryFile is the MVDR department export.
	DefaultSecondaryFile = "MVDR23_DEPARTMENTS_7UTF-8.csv"

	// DefaultOutputFile receives the merged dataset.
	DefaultOutputFile = "result_file.csv"

	// DefaultUnmatchedFile receives primary rows with an id but no match.
	DefaultUnmatchedFile = "unmatched_with_id.csv"

	// LogFilePrefix prefixes the per-run log file name.
	LogFilePrefix = "merge_files_"

	// LogFileTimeLayout is the timestamp layout in the log file name.
	LogFileTimeLayout = "20060102_150405"

	// ConfigFileName is the config file searched in . and $HOME (without extension).
	ConfigFileName = ".deptmerge"

	// EnvPrefix prefixes every environment variable read by the CLI.
	EnvPrefix = "DEPTMERGE"
)

// Delimiter separates fields in both input files and both outputs.
const Delimiter = ';'

// DefaultEncoding is used for inputs, outputs and the log file unless configured.
const DefaultEncoding = "utf-8"

// Primary (AO) column names.
const (
	ColumnID         = "id"
	ColumnName       = "name_ru"
	ColumnNameAlt    = "name_en"
	ColumnCode       = "regula_code"
	ColumnAuxCode    = "elpost_code"
	ColumnAssignedID = "epgu_code"
)

// Secondary (MVDR) column names.
const (
	ColumnSecondaryName = "departmentname"
	ColumnSecondaryCode = "departmentcode"
	ColumnRecordID      = "recordid"
)
