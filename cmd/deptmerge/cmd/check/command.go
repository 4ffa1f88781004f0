// Package check implements the check command, a read-only pass that
// reports key conflicts in both lists before a merge.
package check

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentstation/deptmerge/internal/appcontext"
	"github.com/agentstation/deptmerge/internal/cmd/alerts"
	"github.com/agentstation/deptmerge/internal/cmd/output"
	"github.com/agentstation/deptmerge/pkg/dataset"
	"github.com/agentstation/deptmerge/pkg/errors"
	"github.com/agentstation/deptmerge/pkg/logging"
)

// ErrConflicts is returned with --strict when conflicts are found.
var ErrConflicts = errors.New("key conflicts found")

// NewCommand creates the check command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		primary   string
		secondary string
		encoding  string
		policy    string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:     "check",
		GroupID: "core",
		Short:   "Report key conflicts without merging",
		Long: `Check reads both lists and reports what would make a merge lossy:

• secondary rows whose key was overwritten by a later row
• secondary record ids that appear under several keys
• primary rows sharing a key, of which only the first can be matched

No files are written.`,
		Example: `  deptmerge check
  deptmerge check --strict -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config()
			if cmd.Flags().Changed("primary") {
				cfg.Primary = primary
			}
			if cmd.Flags().Changed("secondary") {
				cfg.Secondary = secondary
			}
			if cmd.Flags().Changed("encoding") {
				cfg.Encoding = encoding
			}
			if cmd.Flags().Changed("policy") {
				cfg.Policy = policy
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return Execute(cmd.Context(), app, strict, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&primary, "primary", "p", "", "primary (AO) file")
	cmd.Flags().StringVarP(&secondary, "secondary", "s", "", "secondary (MVDR) file")
	cmd.Flags().StringVarP(&encoding, "encoding", "e", "", "input encoding")
	cmd.Flags().StringVar(&policy, "policy", "", "normalization policy: strict, loose")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when conflicts are found")

	return cmd
}

// Execute runs the check and prints its report.
func Execute(ctx context.Context, app appcontext.Interface, strict bool, w io.Writer) error {
	cfg := app.Config()
	ctx = logging.WithLogger(ctx, app.Logger())

	primary, err := dataset.ReadPrimary(ctx, cfg.Primary, cfg.Encoding, cfg.Columns.Primary)
	if err != nil {
		return err
	}
	secondary, err := dataset.ReadSecondary(ctx, cfg.Secondary, cfg.Encoding, cfg.Columns.Secondary)
	if err != nil {
		return err
	}

	r, err := app.Reconciler()
	if err != nil {
		return err
	}
	report, err := r.Check(ctx, primary, secondary)
	if err != nil {
		return err
	}

	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)
	if format != output.FormatTable {
		if err := formatter.Format(w, report); err != nil {
			return err
		}
	} else {
		aw := alerts.NewWriter(w, cfg.NoColor)
		if report.HasConflicts() {
			if err := formatter.Format(w, output.CheckTable(report)); err != nil {
				return err
			}
			err = aw.Write(alerts.NewWarning("%d secondary key collisions, %d primary keys shared by several rows",
				report.IndexCollisions, len(report.DuplicatePrimary)))
		} else {
			err = aw.Write(alerts.NewSuccess("No key conflicts in %d primary and %d secondary rows",
				report.Inputs.PrimaryRows, report.Inputs.SecondaryRows))
		}
		if err != nil {
			return err
		}
	}

	if strict && report.HasConflicts() {
		return ErrConflicts
	}
	return nil
}
