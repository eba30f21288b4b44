package style

import (
	"golang.org/x/net/html"
)

// Styleable is a host object styles may be applied to.
type Styleable interface {
	Element
	StyleKey() string // identity of the host object, for diagnostics
}

// StyleFamily may be implemented by host objects to name the adapter family
// responsible for them, e.g. "view" or "button".
type StyleFamily interface {
	StyleFamily() string
}

// PartProvider is implemented by host objects with synthetic parts. StylePart
// returns the receiver standing in for the part with the given tag, or nil
// if the host has no such part.
type PartProvider interface {
	StylePart(tag string) any
}

// Target is the receiver of a style pass: either a host object itself or a
// synthetic part of a host object.
//
//	type Target
//	    = Host(Styleable)
//	    | Synthetic(Styleable, tag)
//
// The zero Target addresses nothing.
type Target struct {
	host Styleable
	tag  string
	node *html.Node // identity of a synthetic part for selector matching
}

// Host returns a target for host object s.
func Host(s Styleable) Target {
	return Target{host: s}
}

// Synthetic returns a target for the part of parent named by tag. For
// selector matching the part appears as an element <tag> below the parent's
// element, without being linked into the parent's children.
func Synthetic(parent Styleable, tag string) Target {
	t := Target{host: parent, tag: tag}
	t.node = &html.Node{Type: html.ElementNode, Data: tag}
	if parent != nil {
		t.node.Parent = parent.HTMLNode()
	}
	return t
}

// IsSynthetic is true for targets addressing a part of a host object.
func (t Target) IsSynthetic() bool {
	return t.tag != ""
}

// IsZero is true for the zero target.
func (t Target) IsZero() bool {
	return t.host == nil
}

// Host returns the host object of t. For synthetic targets this is the
// parent object the part belongs to.
func (t Target) Host() Styleable {
	return t.host
}

// Part returns the tag of a synthetic target, or "".
func (t Target) Part() string {
	return t.tag
}

// HTMLNode returns the element selectors are matched against.
func (t Target) HTMLNode() *html.Node {
	if t.IsSynthetic() {
		return t.node
	}
	if t.host == nil {
		return nil
	}
	return t.host.HTMLNode()
}

// Family returns the adapter family of the host object, or "".
func (t Target) Family() string {
	if f, ok := t.host.(StyleFamily); ok {
		return f.StyleFamily()
	}
	return ""
}

// Receiver returns the object style mutations go to. For host targets this is
// the host object. For synthetic targets it is what the host's PartProvider
// returns for the tag, which may be nil.
func (t Target) Receiver() any {
	if !t.IsSynthetic() {
		return t.host
	}
	if pp, ok := t.host.(PartProvider); ok {
		return pp.StylePart(t.tag)
	}
	return nil
}

func (t Target) String() string {
	if t.host == nil {
		return "<no target>"
	}
	if t.IsSynthetic() {
		return t.host.StyleKey() + "::" + t.tag
	}
	return t.host.StyleKey()
}

var _ Element = Target{}
