package merge

import (
	"context"
	"io"

	"github.com/agentstation/deptmerge/internal/appcontext"
	"github.com/agentstation/deptmerge/internal/cmd/alerts"
	"github.com/agentstation/deptmerge/internal/cmd/output"
	"github.com/agentstation/deptmerge/pkg/dataset"
	"github.com/agentstation/deptmerge/pkg/logging"
	"github.com/agentstation/deptmerge/pkg/reconciler"
)

// Execute runs a merge with the application's current configuration.
func Execute(ctx context.Context, app appcontext.Interface, dryRun bool, w io.Writer) (err error) {
	cfg := app.Config()

	logger, closer, err := app.RunLogger()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); err == nil {
			err = cerr
		}
	}()

	ctx = logging.WithRun(logging.WithLogger(ctx, logger))
	log := logging.FromContext(ctx)
	log.Info().
		Str("primary", cfg.Primary).
		Str("secondary", cfg.Secondary).
		Str("encoding", cfg.Encoding).
		Str("policy", cfg.Policy).
		Msg("Merge started")

	// fail logs the cause to the run log before returning it
	fail := func(msg string, err error) error {
		log.Error().Err(err).Msg(msg)
		return err
	}

	primary, err := dataset.ReadPrimary(logging.WithStage(ctx, "read"), cfg.Primary, cfg.Encoding, cfg.Columns.Primary)
	if err != nil {
		return fail("Cannot read primary file", err)
	}
	secondary, err := dataset.ReadSecondary(logging.WithStage(ctx, "read"), cfg.Secondary, cfg.Encoding, cfg.Columns.Secondary)
	if err != nil {
		return fail("Cannot read secondary file", err)
	}

	r, err := app.Reconciler()
	if err != nil {
		return fail("Invalid matching settings", err)
	}
	result, err := r.Reconcile(ctx, primary, secondary)
	if err != nil {
		return fail("Reconciliation aborted", err)
	}

	if dryRun {
		log.Info().Msg("Dry run, no files written")
	} else {
		if err := writeOutputs(logging.WithStage(ctx, "write"), app, result); err != nil {
			return fail("Cannot write output", err)
		}
	}

	return printSummary(w, app, logging.RunID(ctx), r, result, dryRun)
}

// writeOutputs writes the merged file before the unmatched file.
func writeOutputs(ctx context.Context, app appcontext.Interface, result *reconciler.Result) error {
	cfg := app.Config()
	enc := cfg.OutputEncodingOrInput()

	if err := dataset.WritePrimary(ctx, cfg.Output, enc, cfg.Columns.Primary, result.Rows); err != nil {
		return err
	}
	return dataset.WritePrimary(ctx, cfg.UnmatchedOutput, enc, cfg.Columns.Primary, result.Unmatched)
}

func printSummary(w io.Writer, app appcontext.Interface, runID string, r reconciler.Reconciler, result *reconciler.Result, dryRun bool) error {
	cfg := app.Config()
	format := output.DetectFormat(app.OutputFormat())

	if format != output.FormatTable {
		return output.NewFormatter(format).Format(w, output.MergeSummary{
			RunID:     runID,
			Policy:    r.Policy().String(),
			Output:    cfg.Output,
			Unmatched: cfg.UnmatchedOutput,
			Stats:     result.Stats,
		})
	}

	if err := output.NewFormatter(format).Format(w, output.StatsTable(result.Stats)); err != nil {
		return err
	}

	level := alerts.LevelSuccess
	if result.Stats.Unmatched > 0 || result.Stats.IndexCollisions > 0 {
		level = alerts.LevelWarning
	}

	aw := alerts.NewWriter(w, cfg.NoColor)
	if dryRun {
		return aw.Write(alerts.NewInfo("Dry run, nothing written").WithDetails(result.Summary()))
	}
	return aw.Write(
		alerts.New(level, "Merged list written to %s", cfg.Output).WithDetails(result.Summary()),
		alerts.New(level, "Unmatched rows written to %s", cfg.UnmatchedOutput),
	)
}
