package merge

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/deptmerge/internal/config"
)

// Flags holds merge-specific flags. Only flags set on the command line
// override the loaded configuration.
type Flags struct {
	Primary            string
	Secondary          string
	Encoding           string
	OutputEncoding     string
	Output             string
	UnmatchedOutput    string
	Policy             string
	NoMatchLevel       string
	AltNamePlaceholder string
	LogDir             string
	LogEncoding        string
	LogConsole         bool
	DryRun             bool
}

func addFlags(cmd *cobra.Command) *Flags {
	f := &Flags{}
	fs := cmd.Flags()
	fs.StringVarP(&f.Primary, "primary", "p", "", "primary (AO) file")
	fs.StringVarP(&f.Secondary, "secondary", "s", "", "secondary (MVDR) file")
	fs.StringVarP(&f.Encoding, "encoding", "e", "", "input encoding: utf-8, utf-8-sig, cp1251, koi8-r, iso-8859-5")
	fs.StringVar(&f.OutputEncoding, "output-encoding", "", "output encoding (default: input encoding)")
	fs.StringVar(&f.Output, "output", "", "merged output file")
	fs.StringVar(&f.UnmatchedOutput, "unmatched-output", "", "file for primary rows with an id but no match")
	fs.StringVar(&f.Policy, "policy", "", "normalization policy: strict, loose")
	fs.StringVar(&f.NoMatchLevel, "no-match-level", "", "log level of rows without a match: debug, info, warn")
	fs.StringVar(&f.AltNamePlaceholder, "alt-name-placeholder", "", "name_en value for appended secondary rows")
	fs.StringVar(&f.LogDir, "log-dir", "", "directory for the run log file")
	fs.StringVar(&f.LogEncoding, "log-encoding", "", "encoding of the run log file")
	fs.BoolVar(&f.LogConsole, "log-console", false, "mirror the run log to stderr")
	fs.BoolVar(&f.DryRun, "dry-run", false, "reconcile and report without writing output files")
	return f
}

// apply copies flags the user set onto cfg.
func (f *Flags) apply(cmd *cobra.Command, cfg *config.Config) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("primary", &cfg.Primary, f.Primary)
	set("secondary", &cfg.Secondary, f.Secondary)
	set("encoding", &cfg.Encoding, f.Encoding)
	set("output-encoding", &cfg.OutputEncoding, f.OutputEncoding)
	set("output", &cfg.Output, f.Output)
	set("unmatched-output", &cfg.UnmatchedOutput, f.UnmatchedOutput)
	set("policy", &cfg.Policy, f.Policy)
	set("no-match-level", &cfg.NoMatchLevel, f.NoMatchLevel)
	set("alt-name-placeholder", &cfg.AltNamePlaceholder, f.AltNamePlaceholder)
	set("log-dir", &cfg.LogDir, f.LogDir)
	set("log-encoding", &cfg.LogEncoding, f.LogEncoding)
	if cmd.Flags().Changed("log-console") {
		cfg.LogConsole = f.LogConsole
	}
}
