package gaze

// Attr is a single named field of a gaze record.
type Attr struct {
	Name  string
	Value string
}

// Record is one sampled gaze event. Attribute order is preserved as read.
type Record struct {
	Attrs []Attr
}

// NewRecord builds a record from alternating name/value pairs.
// A trailing name without a value is ignored.
func NewRecord(pairs ...string) Record {
	attrs := make([]Attr, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, Attr{Name: pairs[i], Value: pairs[i+1]})
	}
	return Record{Attrs: attrs}
}

// Get returns the value of the named attribute.
func (r Record) Get(name string) (string, bool) {
	for _, a := range r.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Target returns the value of the target field, or "" when absent.
func (r Record) Target(field string) string {
	v, _ := r.Get(field)
	return v
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r.Attrs == nil {
		return Record{}
	}
	attrs := make([]Attr, len(r.Attrs))
	copy(attrs, r.Attrs)
	return Record{Attrs: attrs}
}

// Log is an ordered sequence of gaze records in capture order.
type Log []Record

// Targets returns the target value of every record, in order.
func (l Log) Targets(field string) []string {
	out := make([]string, len(l))
	for i, r := range l {
		out[i] = r.Target(field)
	}
	return out
}
