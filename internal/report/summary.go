package report

import (
	"fmt"
	"io"

	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/gaze"
)

// Summary describes one cleaning run.
type Summary struct {
	RunID      string         `json:"run_id"`
	Input      string         `json:"input"`
	Output     string         `json:"output,omitempty"`
	Window     int            `json:"window"`
	Field      string         `json:"field"`
	RecordsIn  int            `json:"records_in"`
	RecordsOut int            `json:"records_out"`
	Removed    int            `json:"removed"`
	Flickers   []gaze.Flicker `json:"flickers"`
	Digest     string         `json:"digest"`
	DryRun     bool           `json:"dry_run"`
}

// New builds the summary of applying filter to in.
func New(runID, input, output string, filter gaze.Filter, in gaze.Log, res gaze.Result) (Summary, error) {
	digest, err := Digest(res.Kept)
	if err != nil {
		return Summary{}, err
	}
	flickers := res.Flickers
	if flickers == nil {
		flickers = []gaze.Flicker{}
	}
	return Summary{
		RunID:      runID,
		Input:      input,
		Output:     output,
		Window:     filter.Window,
		Field:      filter.Field,
		RecordsIn:  len(in),
		RecordsOut: len(res.Kept),
		Removed:    len(res.Removed),
		Flickers:   flickers,
		Digest:     digest,
	}, nil
}

// Canonical returns the canonical JSON encoding of s.
func (s Summary) Canonical() ([]byte, error) {
	flickers := make([]any, len(s.Flickers))
	for i, f := range s.Flickers {
		flickers[i] = map[string]any{
			"start":    f.Start,
			"end":      f.End,
			"target":   f.Target,
			"baseline": f.Baseline,
		}
	}
	obj := map[string]any{
		"run_id":      s.RunID,
		"input":       s.Input,
		"window":      s.Window,
		"field":       s.Field,
		"records_in":  s.RecordsIn,
		"records_out": s.RecordsOut,
		"removed":     s.Removed,
		"flickers":    flickers,
		"digest":      s.Digest,
		"dry_run":     s.DryRun,
	}
	if s.Output != "" {
		obj["output"] = s.Output
	}
	return MarshalCanonical(obj)
}

// WriteText renders s for humans. With verbose set every flicker window is
// listed.
func (s Summary) WriteText(w io.Writer, verbose bool) {
	switch {
	case s.DryRun:
		fmt.Fprintf(w, "Checked %s (dry run, nothing written)\n", s.Input)
	default:
		fmt.Fprintf(w, "Cleaned %s -> %s\n", s.Input, s.Output)
	}
	fmt.Fprintf(w, "  Records: %d in, %d out (%d removed)\n", s.RecordsIn, s.RecordsOut, s.Removed)
	fmt.Fprintf(w, "  Flicker windows: %d (window %d, field %s)\n", len(s.Flickers), s.Window, s.Field)
	if verbose {
		for _, f := range s.Flickers {
			fmt.Fprintf(w, "    [%d, %d) %q over %q\n", f.Start, f.End, f.Target, f.Baseline)
		}
		fmt.Fprintf(w, "  Run: %s\n", s.RunID)
	}
	fmt.Fprintf(w, "  Digest: %s\n", s.Digest)
}
