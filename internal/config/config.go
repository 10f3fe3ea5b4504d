package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/gaze"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/gazexml"
)

// DefaultFileName is read from the working directory when no path is given.
const DefaultFileName = "gazeclean.yaml"

// ErrInvalid is returned when configuration values fail validation.
var ErrInvalid = errors.New("invalid configuration")

//go:embed schema.cue
var schemaCUE string

// Config holds every user-adjustable setting of the cleaner.
type Config struct {
	Filter  FilterConfig  `yaml:"filter" json:"filter"`
	XML     XMLConfig     `yaml:"xml" json:"xml"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Source is the file the configuration came from, or "<defaults>".
	Source string `yaml:"-" json:"-"`
}

// FilterConfig controls the flicker filter.
type FilterConfig struct {
	Window      int    `yaml:"window" json:"window"`
	TargetField string `yaml:"target_field" json:"target_field"`
}

// XMLConfig names the session file elements.
type XMLConfig struct {
	RecordElement    string `yaml:"record_element" json:"record_element"`
	ContainerElement string `yaml:"container_element" json:"container_element"`
	Indent           int    `yaml:"indent" json:"indent"`
}

// OutputConfig controls where the cleaned file goes.
type OutputConfig struct {
	Path string `yaml:"path" json:"path"`
}

// LoggingConfig defines log verbosity and formatting.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns the settings of the reference cleaning flow.
func Default() Config {
	return Config{
		Filter: FilterConfig{
			Window:      gaze.DefaultWindow,
			TargetField: gaze.DefaultField,
		},
		XML: XMLConfig{
			RecordElement:    gazexml.DefaultRecordElement,
			ContainerElement: gazexml.DefaultContainerElement,
			Indent:           gazexml.DefaultIndent,
		},
		Output: OutputConfig{
			Path: gazexml.DefaultOutputPath,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Source: "<defaults>",
	}
}

// Load reads configuration from path on top of the defaults.
// When path is empty, ./gazeclean.yaml is read if present; a missing default
// file is not an error, a missing explicit file is.
func Load(path string) (Config, error) {
	cfg := Default()

	candidate := strings.TrimSpace(path)
	explicit := candidate != ""
	if !explicit {
		candidate = DefaultFileName
	}

	data, err := os.ReadFile(candidate)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file %q: %w", candidate, err)
	}

	// Strict decoding catches typos such as "windw:".
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config file %q: %w", candidate, err)
	}
	cfg.Source = candidate
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", candidate, err)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Filter.TargetField = strings.TrimSpace(c.Filter.TargetField)
	c.XML.RecordElement = strings.TrimSpace(c.XML.RecordElement)
	c.XML.ContainerElement = strings.TrimSpace(c.XML.ContainerElement)
	c.Output.Path = strings.TrimSpace(c.Output.Path)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "console" {
		c.Logging.Format = "text"
	}
}

// Validate checks the configuration against the embedded CUE schema.
func (c Config) Validate() error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	val := ctx.Encode(c)
	if err := val.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, describeCUEError(err))
	}
	return nil
}

// describeCUEError renders the first CUE error as "path: message", with the
// schema position when one is known.
func describeCUEError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	first := errs[0]
	format, args := first.Msg()
	msg := fmt.Sprintf(format, args...)
	if path := first.Path(); len(path) > 0 {
		msg = strings.Join(path, ".") + ": " + msg
	}
	if positions := cueerrors.Positions(first); len(positions) > 0 && positions[0].IsValid() {
		pos := positions[0]
		msg = fmt.Sprintf("%s (%s:%d:%d)", msg, pos.Filename(), pos.Line(), pos.Column())
	}
	return msg
}

// FilterSettings returns the flicker filter described by c.
func (c Config) FilterSettings() gaze.Filter {
	return gaze.Filter{Window: c.Filter.Window, Field: c.Filter.TargetField}
}

// Layout returns the XML layout described by c.
func (c Config) Layout() gazexml.Layout {
	return gazexml.Layout{
		Record:    c.XML.RecordElement,
		Container: c.XML.ContainerElement,
		Indent:    c.XML.Indent,
	}
}
