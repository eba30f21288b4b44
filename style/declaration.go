package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/css/parse"
)

// Declaration is a single property/value pair of a rule. Its value is parsed
// when the declaration is created. A declaration whose value does not parse
// is kept, with Err set, and will be skipped by the cascade.
type Declaration struct {
	Name      string
	Raw       Property  // value as written in the source
	Value     css.Value // typed value; nil if Err is set
	Order     int       // position within the enclosing rule set
	Important bool
	Err       error
}

// NewDeclaration creates a declaration for property name and parses its value.
func NewDeclaration(name string, raw Property, important bool) Declaration {
	name = strings.ToLower(strings.TrimSpace(name))
	d := Declaration{Name: name, Raw: Property(strings.TrimSpace(raw.String())), Important: important}
	if d.Raw.IsEmpty() {
		d.Err = fmt.Errorf("property %s: empty value", name)
		return d
	}
	d.Value, d.Err = parse.Value(name, d.Raw.String())
	if d.Err != nil {
		tracer().Debugf("invalid declaration %s: %v", name, d.Err)
		d.Err = fmt.Errorf("property %s: %w", name, d.Err)
	}
	return d
}

// ParseDeclarations creates the declarations for a property. Shorthand
// properties are expanded into one declaration per individual property.
func ParseDeclarations(name string, raw Property, important bool) []Declaration {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsCompound(name) || raw.IsInherit() {
		return []Declaration{NewDeclaration(name, raw, important)}
	}
	kvs, err := SplitCompoundProperty(name, raw)
	if err != nil {
		return []Declaration{{Name: name, Raw: raw, Important: important, Err: err}}
	}
	decls := make([]Declaration, len(kvs))
	for i, kv := range kvs {
		decls[i] = NewDeclaration(kv.Key, kv.Value, important)
	}
	return decls
}

// Valid is true if d's value has been parsed without error.
func (d Declaration) Valid() bool {
	return d.Err == nil && d.Value != nil
}

// String returns d in source form, without trailing semicolon.
func (d Declaration) String() string {
	if d.Important {
		return d.Name + ": " + d.Raw.String() + " !important"
	}
	return d.Name + ": " + d.Raw.String()
}

// WriteTo writes d as "name: value;".
func (d Declaration) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String()+";")
	return int64(n), err
}

// WriteDeclarations writes decls on a single line, separated by blanks.
// This is the shared writer for rule bodies and keyframe blocks.
func WriteDeclarations(w io.Writer, decls []Declaration) (int64, error) {
	var total int64
	for i, d := range decls {
		if i > 0 {
			n, err := io.WriteString(w, " ")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
		n, err := d.WriteTo(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
