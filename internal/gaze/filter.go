package gaze

import (
	"errors"
	"fmt"
)

const (
	// DefaultWindow is the look-ahead distance, in samples.
	DefaultWindow = 50

	// DefaultField is the attribute holding the fixated target label.
	DefaultField = "gaze_target"
)

// Filter removes short-lived target changes from a gaze log.
type Filter struct {
	// Window is the fixed look-ahead offset in samples.
	Window int

	// Field names the target attribute.
	Field string
}

// NewFilter returns a filter with the default window and field.
func NewFilter() Filter {
	return Filter{Window: DefaultWindow, Field: DefaultField}
}

// Validate checks the filter settings.
func (f Filter) Validate() error {
	if f.Window < 1 {
		return fmt.Errorf("window must be at least 1, got %d", f.Window)
	}
	if f.Field == "" {
		return errors.New("target field must not be empty")
	}
	return nil
}

// Flicker is one detected accidental change, covering indices [Start, End).
type Flicker struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Target   string `json:"target"`
	Baseline string `json:"baseline"`
}

// Len returns the number of samples covered by the window.
func (f Flicker) Len() int {
	return f.End - f.Start
}

// Result is the outcome of applying a Filter.
type Result struct {
	// Kept is the surviving sub-sequence, in input order.
	Kept Log

	// Flickers lists every detected window in scan order. Windows may overlap.
	Flickers []Flicker

	// Removed lists the distinct removed indices, ascending.
	Removed []int
}

// Apply runs the flicker scan over log.
//
// The baseline starts as the empty label. At each index whose target differs
// from the baseline, the record Window positions ahead is checked: if it is
// back on the baseline, [i, i+Window) is marked for removal and the baseline
// stays; otherwise the change is genuine and becomes the baseline. The scan
// never skips ahead, so indices inside a marked window are re-evaluated
// against the same baseline and may open windows of their own.
func (f Filter) Apply(log Log) Result {
	n := len(log)
	targets := log.Targets(f.Field)
	marked := make([]bool, n)

	var (
		baseline string
		flickers []Flicker
	)
	for i := 0; i < n; i++ {
		if targets[i] == baseline {
			continue
		}
		ahead := i + f.Window
		if ahead < n && targets[ahead] == baseline {
			for j := i; j < ahead; j++ {
				marked[j] = true
			}
			flickers = append(flickers, Flicker{
				Start:    i,
				End:      ahead,
				Target:   targets[i],
				Baseline: baseline,
			})
			continue
		}
		baseline = targets[i]
	}

	kept := make(Log, 0, n)
	var removed []int
	for i, r := range log {
		if marked[i] {
			removed = append(removed, i)
			continue
		}
		kept = append(kept, r)
	}

	return Result{Kept: kept, Flickers: flickers, Removed: removed}
}

// RemoveFlickers applies the default filter and returns the surviving records.
func RemoveFlickers(log Log) Log {
	return NewFilter().Apply(log).Kept
}
