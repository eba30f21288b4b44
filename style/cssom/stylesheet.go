package cssom

import (
	"fmt"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/npillmayer/restyle/keyframes"
	"github.com/npillmayer/restyle/style"
	"github.com/xlab/treeprint"
)

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// In order to de-couple parsing of stylesheet source from the object model,
// clients add stylesheets through this interface (e.g., see package
// douceuradapter).
type StyleSheet interface {
	Empty() bool                      // does this stylesheet contain any rules?
	RuleSets() []*style.RuleSet       // rule sets, ordered from 0 in source order
	Keyframes() []*keyframes.Keyframe // @keyframes definitions
	FontFaces() []FontFace            // @font-face definitions
}

// FontFace is an @font-face definition.
type FontFace struct {
	Family string
	Src    string // URL of the font resource
	Weight string
	Style  string
}

// --- Selectors -------------------------------------------------------------

type selector struct {
	text string
	sel  cascadia.Sel
}

// CompileSelector compiles a single (non-grouped) selector.
func CompileSelector(text string) (style.Selector, error) {
	sel, err := cascadia.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", text, err)
	}
	return selector{text: text, sel: sel}, nil
}

func (s selector) String() string {
	return s.text
}

func (s selector) Specificity() style.Specificity {
	return style.Specificity(s.sel.Specificity())
}

func (s selector) Match(e style.Element) bool {
	n := e.HTMLNode()
	if n == nil {
		return false
	}
	return s.sel.Match(n)
}

// --- CSSOM -----------------------------------------------------------------

// CSSOM holds the rules of all stylesheets added to it. Rule sets are
// numbered in the order stylesheets are added, so later stylesheets win over
// earlier ones with equal specificity. A CSSOM is safe for concurrent use.
type CSSOM struct {
	mx       sync.RWMutex
	ruleSets []*style.RuleSet
	next     int // source order of the next rule set
	frames   *keyframes.Registry
	faces    []FontFace
}

// New creates an empty CSSOM.
func New() *CSSOM {
	return &CSSOM{frames: keyframes.NewRegistry()}
}

// AddStyleSheet appends the rules of sheet.
func (om *CSSOM) AddStyleSheet(sheet StyleSheet) {
	if sheet == nil || sheet.Empty() {
		return
	}
	om.mx.Lock()
	defer om.mx.Unlock()
	base, last := om.next, om.next
	for _, rs := range sheet.RuleSets() {
		o := base + rs.Order()
		om.ruleSets = append(om.ruleSets, rs.WithOrder(o))
		if o >= last {
			last = o + 1
		}
	}
	om.next = last
	for _, k := range sheet.Keyframes() {
		om.frames.Add(k)
	}
	om.faces = append(om.faces, sheet.FontFaces()...)
	tracer().Debugf("cssom: added stylesheet with %d rule sets", len(sheet.RuleSets()))
}

// Match returns the rule sets whose selectors match e, in source order.
func (om *CSSOM) Match(e style.Element) []*style.RuleSet {
	om.mx.RLock()
	defer om.mx.RUnlock()
	var matching []*style.RuleSet
	for _, rs := range om.ruleSets {
		if rs.Matches(e) {
			matching = append(matching, rs)
		}
	}
	return matching
}

// RuleSets returns all rule sets, in source order.
func (om *CSSOM) RuleSets() []*style.RuleSet {
	om.mx.RLock()
	defer om.mx.RUnlock()
	r := make([]*style.RuleSet, len(om.ruleSets))
	copy(r, om.ruleSets)
	return r
}

// Keyframes returns the registry of keyframe animations.
func (om *CSSOM) Keyframes() *keyframes.Registry {
	return om.frames
}

// FontFaces returns all @font-face definitions, in source order.
func (om *CSSOM) FontFaces() []FontFace {
	om.mx.RLock()
	defer om.mx.RUnlock()
	f := make([]FontFace, len(om.faces))
	copy(f, om.faces)
	return f
}

// Dump renders the CSSOM as a tree, for debugging.
func (om *CSSOM) Dump() string {
	om.mx.RLock()
	defer om.mx.RUnlock()
	tree := treeprint.New()
	rules := tree.AddBranch("rules")
	for _, rs := range om.ruleSets {
		b := rules.AddBranch(fmt.Sprintf("%s %s #%d", rs.Selector(), rs.Specificity(), rs.Order()))
		for _, d := range rs.Declarations() {
			b.AddNode(d.String())
		}
	}
	frames := tree.AddBranch("keyframes")
	for _, name := range om.frames.Names() {
		k, _ := om.frames.Lookup(name)
		frames.AddNode(fmt.Sprintf("%s (%d blocks)", name, k.Len()))
	}
	faces := tree.AddBranch("font-faces")
	for _, f := range om.faces {
		faces.AddNode(fmt.Sprintf("%s %s %s → %s", f.Family, f.Weight, f.Style, f.Src))
	}
	return tree.String()
}
