package testutil

import (
	"strconv"
	"strings"

	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/gaze"
)

// SampleClock stamps synthetic gaze records with increasing timestamps.
//
// The first call to Next() returns StartMillis; each following call adds
// StepMillis. A zero StepMillis behaves like a 60 Hz tracker (16 ms).
type SampleClock struct {
	StartMillis int64
	StepMillis  int64

	n int64
}

// Next returns the next timestamp in milliseconds.
func (c *SampleClock) Next() int64 {
	step := c.StepMillis
	if step == 0 {
		step = 16
	}
	ts := c.StartMillis + c.n*step
	c.n++
	return ts
}

// Reset rewinds the clock to StartMillis.
func (c *SampleClock) Reset() {
	c.n = 0
}

// Run returns label repeated count times.
func Run(label string, count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = label
	}
	return out
}

// Seq concatenates runs of labels.
func Seq(runs ...[]string) []string {
	var out []string
	for _, r := range runs {
		out = append(out, r...)
	}
	return out
}

// Labels splits a compact label string such as "AABBA" into single-character
// labels. A '.' stands for the empty label.
func Labels(s string) []string {
	out := make([]string, 0, len(s))
	for _, ch := range s {
		if ch == '.' {
			out = append(out, "")
			continue
		}
		out = append(out, string(ch))
	}
	return out
}

// GazeLog builds a log with one record per target label. Each record carries
// an index attribute "i", a timestamp "time" from a fresh SampleClock and the
// target in gaze.DefaultField.
func GazeLog(targets []string) gaze.Log {
	clock := &SampleClock{}
	log := make(gaze.Log, len(targets))
	for i, target := range targets {
		log[i] = gaze.NewRecord(
			"i", strconv.Itoa(i),
			"time", strconv.FormatInt(clock.Next(), 10),
			gaze.DefaultField, target,
		)
	}
	return log
}

// Indices returns the "i" attribute of every record as ints.
func Indices(log gaze.Log) []int {
	out := make([]int, len(log))
	for i, r := range log {
		v, _ := r.Get("i")
		n, err := strconv.Atoi(v)
		if err != nil {
			n = -1
		}
		out[i] = n
	}
	return out
}

// Compact renders the targets of log as a compact label string, the inverse
// of Labels.
func Compact(log gaze.Log) string {
	var b strings.Builder
	for _, r := range log {
		t := r.Target(gaze.DefaultField)
		if t == "" {
			t = "."
		}
		b.WriteString(t)
	}
	return b.String()
}
