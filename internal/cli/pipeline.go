package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/config"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/gaze"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/gazexml"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/logging"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/report"
)

// filterFlags are the filter overrides shared by clean and inspect.
type filterFlags struct {
	Window int
	Field  string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.Window, "window", gaze.DefaultWindow, "look-ahead window in samples")
	cmd.Flags().StringVar(&f.Field, "field", gaze.DefaultField, "attribute holding the gaze target")
}

// apply copies explicitly set flags over the file configuration.
func (f *filterFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("window") {
		cfg.Filter.Window = f.Window
	}
	if cmd.Flags().Changed("field") {
		cfg.Filter.TargetField = f.Field
	}
}

// loadSettings resolves the configuration (file, then flag overrides) and
// builds the logger. Logs go to the command's stderr.
func loadSettings(opts *RootOptions, cmd *cobra.Command, override func(*config.Config)) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, nil, err
	}
	if override != nil {
		override(&cfg)
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return cfg, nil, err
	}
	logger.Debug("configuration loaded", "source", cfg.Source, "window", cfg.Filter.Window, "field", cfg.Filter.TargetField)
	return cfg, logger, nil
}

// filtered is one loaded and filtered session.
type filtered struct {
	Input  string
	Log    gaze.Log
	Doc    *gazexml.Document
	Filter gaze.Filter
	Result gaze.Result
}

// loadAndFilter reads the session at path and runs the flicker filter on it.
func loadAndFilter(cfg config.Config, logger *slog.Logger, runID, path string) (*filtered, error) {
	log, doc, err := gazexml.Load(path, cfg.Layout(), cfg.Filter.TargetField)
	if err != nil {
		return nil, err
	}
	logger.Info("gaze log loaded", "run_id", runID, "input", path, "records", len(log))

	filter := cfg.FilterSettings()
	res := filter.Apply(log)
	for _, f := range res.Flickers {
		logger.Debug("flicker window", "run_id", runID, "start", f.Start, "end", f.End, "target", f.Target, "baseline", f.Baseline)
	}
	logger.Info("flicker filter applied", "run_id", runID, "windows", len(res.Flickers), "removed", len(res.Removed), "kept", len(res.Kept))

	return &filtered{Input: path, Log: log, Doc: doc, Filter: filter, Result: res}, nil
}

// summarize builds the run summary for f.
func (f *filtered) summarize(runID, output string) (report.Summary, error) {
	return report.New(runID, f.Input, output, f.Filter, f.Log, f.Result)
}
