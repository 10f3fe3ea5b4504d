package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/config"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/report"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/selector"
)

// CleanOptions holds flags for the clean command.
type CleanOptions struct {
	*RootOptions
	filterFlags
	Output string
	DryRun bool

	// RunIDs overrides the run ID generator (for testing).
	// If nil, defaults to report.UUIDv7Generator.
	RunIDs report.RunIDGenerator
}

// cancelledResult is the JSON payload when no input was selected.
type cancelledResult struct {
	Cancelled bool `json:"cancelled"`
}

// NewCleanCommand creates the clean command.
func NewCleanCommand(rootOpts *RootOptions) *cobra.Command {
	return newCleanCommand(&CleanOptions{RootOptions: rootOpts})
}

func newCleanCommand(opts *CleanOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [session.xml]",
		Short: "Remove flickers from a session and write the cleaned copy",
		Long: `Load an XML eye-tracking session, remove accidental gaze-target changes
and write the cleaned session.

A target change is accidental when the target is back on the previous value
exactly --window samples later; the whole window is then dropped. When no
session file is given, the path is read from standard input; an empty answer
cancels the run without writing anything.

Examples:
  gazeclean clean session.xml
  gazeclean clean session.xml -o cleaned.xml --window 30
  gazeclean clean session.xml --dry-run --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd.Context(), opts, args, cmd)
		},
	}

	opts.filterFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output path (default from config: output_cleaned.xml)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "report what would be removed without writing")

	return cmd
}

func runClean(ctx context.Context, opts *CleanOptions, args []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	cfg, logger, err := loadSettings(opts.RootOptions, cmd, func(cfg *config.Config) {
		opts.filterFlags.apply(cmd, cfg)
		if cmd.Flags().Changed("output") {
			cfg.Output.Path = opts.Output
		}
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeConfig, "invalid configuration", err)
	}

	var sel selector.Selector = selector.Prompt{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
	if len(args) == 1 {
		sel = selector.Static{Path: args[0]}
	}
	path, ok, err := sel.Select(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInput, "failed to select input", err)
	}
	if !ok {
		logger.Info("no input selected")
		if formatter.JSON() {
			return formatter.Success(cancelledResult{Cancelled: true})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No input selected.")
		return nil
	}
	if !selector.Match(path) {
		logger.Warn("input does not have an .xml extension", "input", path)
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

	output := cfg.Output.Path
	if opts.DryRun {
		output = ""
	}
	summary, err := run.summarize(runID, output)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeOutput, "failed to summarize run", err)
	}
	summary.DryRun = opts.DryRun

	if !opts.DryRun {
		run.Doc.Replace(run.Result.Kept)
		if err := run.Doc.Save(output); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeOutput, "failed to write cleaned log", err)
		}
		logger.Info("cleaned log written", "run_id", runID, "output", output, "digest", summary.Digest)
	}

	if formatter.JSON() {
		return formatter.Success(summary)
	}
	summary.WriteText(cmd.OutOrStdout(), opts.Verbose)
	return nil
}
