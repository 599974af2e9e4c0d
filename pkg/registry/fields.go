package registry

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Layout is one endpoint's column contract: the ordered field names a row
// carries. Keeping the order in data rather than in code makes the
// "column order is the contract" fact explicit and testable.
type Layout struct {
	Endpoint string
	Columns  []string
}

// Bind pairs a row with its layout, yielding typed by-name accessors.
func (l Layout) Bind(row Row) (*Fields, error) {
	if len(row) != len(l.Columns) {
		return nil, fmt.Errorf("%s: row has %d columns, layout %s expects %d",
			l.Endpoint, len(row), l.Columns, len(l.Columns))
	}
	return &Fields{layout: l, row: row}, nil
}

// Fields reads a bound row's columns by field name. Parse failures
// accumulate; callers check Err once after reading every field.
type Fields struct {
	layout Layout
	row    Row
	err    error
}

func (f *Fields) index(name string) int {
	for i, column := range f.layout.Columns {
		if column == name {
			return i
		}
	}
	f.fail(name, fmt.Errorf("field not in layout"))
	return -1
}

func (f *Fields) fail(name string, err error) {
	if f.err == nil {
		f.err = fmt.Errorf("%s: field %s: %w", f.layout.Endpoint, name, err)
	}
}

func (f *Fields) String(name string) string {
	i := f.index(name)
	if i < 0 {
		return ""
	}
	return f.row[i]
}

// Bool applies the registry's enabled-flag coercion: the literal "1" is
// true, anything else is false.
func (f *Fields) Bool(name string) bool {
	return f.String(name) == "1"
}

func (f *Fields) UUID(name string) uuid.UUID {
	s := f.String(name)
	if s == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		f.fail(name, err)
		return uuid.Nil
	}
	return id
}

// timestamp layouts the registry has been observed emitting
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"1/2/2006 3:04:05 PM",
}

func (f *Fields) Time(name string) time.Time {
	s := f.String(name)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	f.fail(name, fmt.Errorf("unparsable timestamp %q", s))
	return time.Time{}
}

func (f *Fields) Err() error {
	return f.err
}
