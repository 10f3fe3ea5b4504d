package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/config"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/report"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	filterFlags

	// RunIDs overrides the run ID generator (for testing).
	RunIDs report.RunIDGenerator
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	return newInspectCommand(&InspectOptions{RootOptions: rootOpts})
}

func newInspectCommand(opts *InspectOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <session.xml>",
		Short: "List the flicker windows a clean would remove",
		Long: `Load a session and list every flicker window the filter detects.
Nothing is written.

Examples:
  gazeclean inspect session.xml
  gazeclean inspect session.xml --window 30 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args[0], cmd)
		},
	}

	opts.filterFlags.register(cmd)

	return cmd
}

func runInspect(opts *InspectOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	cfg, logger, err := loadSettings(opts.RootOptions, cmd, func(cfg *config.Config) {
		opts.filterFlags.apply(cmd, cfg)
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}

	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = report.UUIDv7Generator{}
	}
	runID := runIDs.Generate()

	run, err := loadAndFilter(cfg, logger, runID, path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInput, "failed to load gaze log", err)
	}
	summary, err := run.summarize(runID, "")
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeOutput, "failed to summarize run", err)
	}
	summary.DryRun = true

	if formatter.JSON() {
		return formatter.Success(summary)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: %d records, %d flicker window(s), %d would be removed\n",
		path, summary.RecordsIn, len(summary.Flickers), summary.Removed)
	if len(summary.Flickers) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "START\tEND\tTARGET\tBASELINE")
	for _, f := range summary.Flickers {
		fmt.Fprintf(tw, "%d\t%d\t%q\t%q\n", f.Start, f.End, f.Target, f.Baseline)
	}
	return tw.Flush()
}
