// Package merge implements the merge command: read both department lists,
// reconcile them and write the merged and unmatched files.
package merge

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/deptmerge/internal/appcontext"
)

// NewCommand creates the merge command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "merge",
		GroupID: "core",
		Short:   "Merge the AO and MVDR department lists",
		Args:    cobra.NoArgs,
		Long: `Merge matches every primary (AO) department to a secondary (MVDR)
record on the normalized (name, code) pair and writes:

• the merged list, with epgu_code set to the matched recordid and every
  unclaimed MVDR row appended, sorted by id
• the primary rows that have an id but found no match

Each recordid is assigned at most once; the first row in file order wins.
Every match, miss and conflict is written to a per-run log file.`,
		Example: `  deptmerge merge
  deptmerge merge -p "AO db prod.csv" -s mvdr.csv -e cp1251
  deptmerge merge --policy loose --no-match-level warn
  deptmerge merge --dry-run -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config()
			flags.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return Execute(cmd.Context(), app, flags.DryRun, cmd.OutOrStdout())
		},
	}

	flags = addFlags(cmd)

	return cmd
}
