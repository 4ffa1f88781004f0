// Package emoji provides status symbols for CLI output.
package emoji

const (
	// Success marks a completed step.
	Success = "✓"

	// Error marks a failed step.
	Error = "✗"

	// Warning marks a completed step with anomalies worth a look.
	Warning = "!"

	// Info prefixes informational lines.
	Info = "i"
)
