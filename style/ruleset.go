package style

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Specificity is the weight of a selector: the count of id selectors, of
// class, attribute and pseudo-class selectors, and of type selectors.
// Specificities compare lexicographically.
type Specificity [3]int

// InlineSpecificity is the specificity of inline style attributes. It is
// higher than the specificity of any selector.
var InlineSpecificity = Specificity{1 << 20, 0, 0}

// Compare returns -1, 0 or +1 if s is less than, equal to or greater than o.
func (s Specificity) Compare(o Specificity) int {
	for i := range s {
		switch {
		case s[i] < o[i]:
			return -1
		case s[i] > o[i]:
			return 1
		}
	}
	return 0
}

// Less is true if s weighs less than o.
func (s Specificity) Less(o Specificity) bool {
	return s.Compare(o) < 0
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s[0], s[1], s[2])
}

// Element is anything a selector may be matched against. Host objects expose
// an HTML node as their identity for selector matching.
type Element interface {
	HTMLNode() *html.Node
}

// Selector selects the elements a rule set applies to. Concrete selectors
// are compiled by package cssom.
type Selector interface {
	String() string
	Specificity() Specificity
	Match(Element) bool
}

// inline is the selector of inline styles. It matches nothing, as inline
// styles are attached to their element explicitly.
type inline struct{}

func (inline) String() string           { return "*inline*" }
func (inline) Specificity() Specificity { return InlineSpecificity }
func (inline) Match(Element) bool       { return false }

// InlineSelector returns the selector for inline style rule sets.
func InlineSelector() Selector {
	return inline{}
}

// --- Rule sets -------------------------------------------------------------

// RuleSet is a selector together with its declarations, in insertion order.
// Rule sets are built by a stylesheet parser and are read-only after that.
type RuleSet struct {
	selector Selector
	decls    []Declaration
	order    int
}

// NewRuleSet creates an empty rule set. order is the position of the rule
// set in source order. sel may be nil for rule sets used as plain
// declaration containers.
func NewRuleSet(sel Selector, order int) *RuleSet {
	return &RuleSet{selector: sel, order: order}
}

// Selector returns the selector of rs, which may be nil.
func (rs *RuleSet) Selector() Selector {
	return rs.selector
}

// Specificity returns the specificity of the selector of rs.
func (rs *RuleSet) Specificity() Specificity {
	if rs == nil || rs.selector == nil {
		return Specificity{}
	}
	return rs.selector.Specificity()
}

// Order returns the position of rs in source order.
func (rs *RuleSet) Order() int {
	return rs.order
}

// WithOrder returns a copy of rs at source position order.
func (rs *RuleSet) WithOrder(order int) *RuleSet {
	c := &RuleSet{selector: rs.selector, order: order}
	c.decls = rs.Declarations()
	return c
}

// Add parses a property and appends its declarations. Shorthands are
// expanded.
func (rs *RuleSet) Add(name string, raw Property, important bool) *RuleSet {
	for _, d := range ParseDeclarations(name, raw, important) {
		rs.AddDeclaration(d)
	}
	return rs
}

// AddDeclaration appends d, numbering it by insertion order.
func (rs *RuleSet) AddDeclaration(d Declaration) *RuleSet {
	d.Order = len(rs.decls)
	rs.decls = append(rs.decls, d)
	return rs
}

// Declarations returns a copy of the declarations of rs, in insertion order.
func (rs *RuleSet) Declarations() []Declaration {
	if rs == nil {
		return nil
	}
	decls := make([]Declaration, len(rs.decls))
	copy(decls, rs.decls)
	return decls
}

// Len returns the count of declarations of rs.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.decls)
}

// Matches is true if the selector of rs matches e.
func (rs *RuleSet) Matches(e Element) bool {
	if rs.selector == nil || e == nil || e.HTMLNode() == nil {
		return false
	}
	return rs.selector.Match(e)
}

// WriteTo writes rs in source form:
//
//	selector {
//	  name: value;
//	}
func (rs *RuleSet) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	sel := "*"
	if rs.selector != nil {
		sel = rs.selector.String()
	}
	b.WriteString(sel)
	b.WriteString(" {\n")
	for _, d := range rs.decls {
		b.WriteString("  ")
		d.WriteTo(&b)
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (rs *RuleSet) String() string {
	var b strings.Builder
	rs.WriteTo(&b)
	return b.String()
}
