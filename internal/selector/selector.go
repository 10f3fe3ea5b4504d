// Package selector chooses the session file to clean.
//
// Choosing nothing is a normal outcome, reported as ok == false rather than
// an error.
package selector

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Selector picks the input file.
type Selector interface {
	Select(ctx context.Context) (path string, ok bool, err error)
}

// Static selects a path given up front, typically a command-line argument.
type Static struct {
	Path string
}

// Select returns the configured path; an empty path counts as cancelled.
func (s Static) Select(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path := strings.TrimSpace(s.Path)
	return path, path != "", nil
}

// Prompt asks for a path on an interactive stream.
type Prompt struct {
	In  io.Reader
	Out io.Writer

	// Label is printed before reading; defaults to "XML file: ".
	Label string
}

// Select prints the label and reads one line. A blank line or end of input
// counts as cancelled. Surrounding quotes, as left by drag-and-drop into a
// terminal, are removed.
func (p Prompt) Select(ctx context.Context) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	label := p.Label
	if label == "" {
		label = "XML file: "
	}
	if p.Out != nil {
		fmt.Fprint(p.Out, label)
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("read selection: %w", err)
	}

	path := strings.TrimSpace(line)
	path = strings.Trim(path, `"'`)
	return path, path != "", nil
}

// Match reports whether path has an .xml extension, ignoring case.
func Match(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}
