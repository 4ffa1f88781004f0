// Package keys implements the keys command, which shows the matching key
// a department name and code normalize to.
package keys

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/deptmerge/internal/appcontext"
	"github.com/agentstation/deptmerge/internal/cmd/output"
	"github.com/agentstation/deptmerge/pkg/departments"
	"github.com/agentstation/deptmerge/pkg/normalize"
)

// Result is the key produced by one policy.
type Result struct {
	Policy string          `json:"policy" yaml:"policy"`
	Key    departments.Key `json:"key" yaml:"key"`
}

// NewCommand creates the keys command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:     "keys NAME CODE",
		GroupID: "core",
		Short:   "Show the normalized matching key of a department",
		Long: `Keys prints the (name, code) pair a department is matched on.
Without --policy every policy is shown, which helps explain why two rows
did or did not match.`,
		Example: `  deptmerge keys "ОМВД России по району" "01-002"
  deptmerge keys --policy loose "Отдел №1" "0100"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			policies := normalize.Policies()
			if cmd.Flags().Changed("policy") {
				p, err := normalize.ParsePolicy(policy)
				if err != nil {
					return err
				}
				policies = []normalize.Policy{p}
			}

			results := Compute(args[0], args[1], policies...)

			format := output.DetectFormat(app.OutputFormat())
			formatter := output.NewFormatter(format)
			if format != output.FormatTable {
				return formatter.Format(cmd.OutOrStdout(), results)
			}
			return formatter.Format(cmd.OutOrStdout(), Table(results))
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "normalization policy: strict, loose (default: all)")

	return cmd
}

// Compute normalizes name and code under each policy.
func Compute(name, code string, policies ...normalize.Policy) []Result {
	results := make([]Result, 0, len(policies))
	for _, p := range policies {
		results = append(results, Result{
			Policy: p.String(),
			Key:    departments.Key{Name: p.Name(name), Code: p.Code(code)},
		})
	}
	return results
}

// Table renders keys with visible quoting so surrounding spaces stand out.
func Table(results []Result) output.Data {
	data := output.Data{Headers: []string{"Policy", "Name", "Code"}}
	for _, r := range results {
		data.Rows = append(data.Rows, []string{r.Policy, strconv.Quote(r.Key.Name), strconv.Quote(r.Key.Code)})
	}
	return data
}
