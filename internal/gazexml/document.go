package gazexml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/gaze"
)

const (
	DefaultRecordElement    = "response"
	DefaultContainerElement = "gazes"
	DefaultIndent           = 2
	DefaultOutputPath       = "output_cleaned.xml"
)

var (
	// ErrMalformed is returned when the input is not a usable session file.
	ErrMalformed = errors.New("malformed gaze XML")

	// ErrMissingField is returned when a record lacks the target attribute.
	ErrMissingField = errors.New("gaze record missing target field")
)

// Layout names the elements that make up a session file.
type Layout struct {
	Record    string // gaze sample element
	Container string // parent of the samples, a direct child of the root
	Indent    int    // spaces per level when writing
}

// DefaultLayout returns the layout of the eye-tracker session exporter.
func DefaultLayout() Layout {
	return Layout{
		Record:    DefaultRecordElement,
		Container: DefaultContainerElement,
		Indent:    DefaultIndent,
	}
}

// Document is the parsed session file the gaze log was read from.
type Document struct {
	doc    *etree.Document
	layout Layout
}

// Load parses the session file at path.
func Load(path string, layout Layout, field string) (gaze.Log, *Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	log, doc, err := Read(f, layout, field)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return log, doc, nil
}

// Read parses a session file from r and extracts every record element, in
// document order, as a gaze record. Each record must carry field.
func Read(r io.Reader, layout Layout, field string) (gaze.Log, *Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("%w: no root element", ErrMalformed)
	}
	if root.SelectElement(layout.Container) == nil {
		return nil, nil, fmt.Errorf("%w: <%s> has no <%s> element", ErrMalformed, root.FullTag(), layout.Container)
	}

	var log gaze.Log
	var walk func(el *etree.Element) error
	walk = func(el *etree.Element) error {
		if el.FullTag() == layout.Record {
			rec := recordFromElement(el)
			if _, ok := rec.Get(field); !ok {
				return fmt.Errorf("%w: record %d has no %q attribute", ErrMissingField, len(log), field)
			}
			log = append(log, rec)
		}
		for _, child := range el.ChildElements() {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, nil, err
	}

	return log, &Document{doc: doc, layout: layout}, nil
}

func recordFromElement(el *etree.Element) gaze.Record {
	attrs := make([]gaze.Attr, len(el.Attr))
	for i := range el.Attr {
		attrs[i] = gaze.Attr{Name: el.Attr[i].FullKey(), Value: el.Attr[i].Value}
	}
	return gaze.Record{Attrs: attrs}
}

// Replace swaps the contents of the container element for log. The
// container's own attributes and everything outside it are left alone.
func (d *Document) Replace(log gaze.Log) {
	container := d.doc.Root().SelectElement(d.layout.Container)
	for len(container.Child) > 0 {
		container.RemoveChildAt(0)
	}
	for _, rec := range log {
		el := container.CreateElement(d.layout.Record)
		for _, a := range rec.Attrs {
			el.CreateAttr(a.Name, a.Value)
		}
	}
}

// WriteTo writes the document, indented and led by an XML declaration.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.ensureDeclaration()
	d.doc.Indent(d.layout.Indent)
	return d.doc.WriteTo(w)
}

// Save writes the document to path, replacing any existing file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func (d *Document) ensureDeclaration() {
	for _, tok := range d.doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	d.doc.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="UTF-8"`))
}
