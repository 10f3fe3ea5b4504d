// Package gaze holds the gaze log model and the flicker filter.
//
// A Log is an ordered sequence of Records in capture order. Each Record is an
// ordered list of attributes; only the target field carries meaning here, every
// other attribute is passed through untouched.
//
// The flicker filter scans the log once against a baseline target. A change of
// target that reverts to the baseline exactly Window samples later is treated as
// tracking noise and the whole window is dropped; any other change becomes the
// new baseline. The window is an index distance, never a time span.
//
// This package imports nothing internal.
package gaze
