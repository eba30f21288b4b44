/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

Stylesheet source is parsed by https://github.com/aymerick/douceur. Qualified
rules become one rule set per selector, @keyframes (including vendor prefixed
variants like @-webkit-keyframes) become keyframe sequences, and @font-face rules become font face
definitions. Other at-rules are skipped.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/restyle/css/lexer"
	"github.com/npillmayer/restyle/keyframes"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/restyle/style/cssom"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'restyle.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.cssom")
}

// CSSStyles is an adapter for interface cssom.StyleSheet.
type CSSStyles struct {
	ruleSets []*style.RuleSet
	frames   []*keyframes.Keyframe
	faces    []cssom.FontFace
}

var _ cssom.StyleSheet = &CSSStyles{}

// prefixedKeyframes matches vendor prefixed @keyframes. douceur parses
// only the unprefixed at-rule as a block of nested rules.
var prefixedKeyframes = regexp.MustCompile(`(?i)@-(webkit|moz|o|ms)-keyframes\b`)

// Parse parses stylesheet source text.
func Parse(text string) (*CSSStyles, error) {
	text = prefixedKeyframes.ReplaceAllString(text, "@keyframes")
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing stylesheet: %w", err)
	}
	return Wrap(sheet), nil
}

// Wrap converts a douceur stylesheet. Rules with selectors which do not
// compile are skipped.
func Wrap(sheet *css.Stylesheet) *CSSStyles {
	styles := &CSSStyles{}
	if sheet == nil {
		return styles
	}
	order := 0
	for _, r := range sheet.Rules {
		switch r.Kind {
		case css.QualifiedRule:
			if styles.addRule(r, order) {
				order++
			}
		case css.AtRule:
			styles.addAtRule(r)
		}
	}
	return styles
}

func (sheet *CSSStyles) addRule(r *css.Rule, order int) bool {
	selectors := r.Selectors
	if len(selectors) == 0 {
		selectors = strings.Split(r.Prelude, ",")
	}
	added := false
	for _, s := range selectors {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sel, err := cssom.CompileSelector(s)
		if err != nil {
			tracer().Errorf("skipping rule: %v", err)
			continue
		}
		rs := style.NewRuleSet(sel, order)
		for _, d := range r.Declarations {
			rs.Add(d.Property, style.Property(d.Value), d.Important)
		}
		sheet.ruleSets = append(sheet.ruleSets, rs)
		added = true
	}
	return added
}

func (sheet *CSSStyles) addAtRule(r *css.Rule) {
	switch strings.ToLower(r.Name) {
	case "@keyframes":
		sheet.frames = append(sheet.frames, keyframe(r))
	case "@font-face":
		if f, ok := fontFace(r); ok {
			sheet.faces = append(sheet.faces, f)
		}
	default:
		tracer().Debugf("skipping unsupported at-rule %s", r.Name)
	}
}

func keyframe(r *css.Rule) *keyframes.Keyframe {
	k := keyframes.NewKeyframe(strings.TrimSpace(r.Prelude))
	for _, inner := range r.Rules {
		selectors := inner.Selectors
		if len(selectors) == 0 {
			selectors = strings.Split(inner.Prelude, ",")
		}
		for _, s := range selectors {
			offset, err := keyframes.ParseOffset(s)
			if err != nil {
				tracer().Errorf("@keyframes %s: %v", k.Name(), err)
				continue
			}
			b := keyframes.NewBlock(offset)
			for _, d := range inner.Declarations {
				b.Add(d.Property, style.Property(d.Value))
			}
			k.AddBlock(b)
		}
	}
	return k
}

func fontFace(r *css.Rule) (cssom.FontFace, bool) {
	f := cssom.FontFace{Weight: "normal", Style: "normal"}
	for _, d := range r.Declarations {
		switch strings.ToLower(d.Property) {
		case "font-family":
			f.Family = strings.Trim(strings.TrimSpace(d.Value), `"'`)
		case "src":
			f.Src = sourceURL(d.Value)
		case "font-weight":
			f.Weight = strings.TrimSpace(d.Value)
		case "font-style":
			f.Style = strings.TrimSpace(d.Value)
		}
	}
	if f.Family == "" || f.Src == "" {
		tracer().Errorf("@font-face without family or url source skipped")
		return f, false
	}
	return f, true
}

// sourceURL finds the first url(…) in a src descriptor.
func sourceURL(src string) string {
	lx := lexer.New(src)
	for t := lx.NextLexeme(); t.Type != lexer.EOF; t = lx.NextLexeme() {
		if t.Type == lexer.URL {
			return t.Text
		}
	}
	return ""
}

// ParseInline parses the declarations of an inline style attribute. The
// resulting rule set has inline specificity. The last declaration need not
// be terminated by a semicolon.
func ParseInline(text string) (*style.RuleSet, error) {
	text = strings.TrimSpace(text)
	if text != "" && !strings.HasSuffix(text, ";") {
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("parsing inline style: %w", err)
	}
	rs := style.NewRuleSet(style.InlineSelector(), 0)
	for _, d := range decls {
		rs.Add(d.Property, style.Property(d.Value), d.Important)
	}
	return rs, nil
}

// InlineStyle returns the rule set of the style attribute of n, or nil.
func InlineStyle(n *html.Node) *style.RuleSet {
	if n == nil {
		return nil
	}
	for _, a := range n.Attr {
		if a.Key == "style" {
			rs, err := ParseInline(a.Val)
			if err != nil {
				tracer().Errorf("%v", err)
				return nil
			}
			return rs
		}
	}
	return nil
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.ruleSets) == 0 && len(sheet.frames) == 0 && len(sheet.faces) == 0
}

// RuleSets returns the rule sets of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) RuleSets() []*style.RuleSet {
	r := make([]*style.RuleSet, len(sheet.ruleSets))
	copy(r, sheet.ruleSets)
	return r
}

// Keyframes returns the @keyframes of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Keyframes() []*keyframes.Keyframe {
	k := make([]*keyframes.Keyframe, len(sheet.frames))
	copy(k, sheet.frames)
	return k
}

// FontFaces returns the @font-face definitions of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) FontFaces() []cssom.FontFace {
	f := make([]cssom.FontFace, len(sheet.faces))
	copy(f, sheet.faces)
	return f
}

// AppendRules appends rules from another stylesheet. Rule sets of other are
// placed after those of sheet in source order.
func (sheet *CSSStyles) AppendRules(other *CSSStyles) {
	if other == nil {
		return
	}
	base := 0
	for _, rs := range sheet.ruleSets {
		if rs.Order() >= base {
			base = rs.Order() + 1
		}
	}
	for _, rs := range other.ruleSets {
		sheet.ruleSets = append(sheet.ruleSets, rs.WithOrder(base+rs.Order()))
	}
	sheet.frames = append(sheet.frames, other.frames...)
	sheet.faces = append(sheet.faces, other.faces...)
}

// ExtractStyleElements visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. It returns the content of
// style-elements as style sheets.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	head := findElement(atom.Head, htmldoc)
	body := findElement(atom.Body, htmldoc)
	styles := extractStyles(head)
	styles = append(styles, extractStyles(body)...)
	return styles
}

func extractStyles(h *html.Node) []*CSSStyles {
	if h == nil {
		return nil
	}
	var styles []*CSSStyles
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom != atom.Style || ch.FirstChild == nil {
			continue
		}
		c, err := Parse(ch.FirstChild.Data)
		if err != nil {
			tracer().Errorf("skipping <style> element: %v", err)
			continue
		}
		styles = append(styles, c)
	}
	return styles
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
