/*
Package restyle resolves CSS-like styles against host objects and applies
them.

An Engine ties the parts of the style pipeline together: stylesheets are
parsed into a CSSOM, the rule sets matching a target are resolved by the
cascade into a style context, and an adapter hands the context to the
stylers responsible for the target's family of host objects.

	engine := restyle.New(cfg, fontProvider, nil)
	defer engine.Close()
	if err := engine.AddStyleSheet(css); err != nil { … }
	ctx, err := engine.Style(style.Host(button), parentCtx)

Host objects are anything implementing style.Styleable. They take part in
styling by implementing the capability interfaces of package styler.

# Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package restyle

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/restyle/config"
	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/font"
	"github.com/npillmayer/restyle/resource"
	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/restyle/style/cascade"
	"github.com/npillmayer/restyle/style/cssom"
	"github.com/npillmayer/restyle/style/cssom/douceuradapter"
	"github.com/npillmayer/restyle/styler"
	"github.com/npillmayer/schuko/tracing"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
)

// tracer traces with key 'restyle.engine'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.engine")
}

var traceKeys = []string{
	"restyle.css",
	"restyle.style",
	"restyle.cascade",
	"restyle.cssom",
	"restyle.shadow",
	"restyle.styler",
	"restyle.font",
	"restyle.resource",
	"restyle.engine",
}

// ErrClosed is returned by engines which have been closed.
var ErrClosed = errors.New("style engine is closed")

// Engine is a style engine. It is safe for concurrent use, but style
// passes for the same target must not run concurrently.
type Engine struct {
	cfg      *config.Config
	om       *cssom.CSSOM
	fonts    *font.Cache
	metrics  css.Metrics
	mx       sync.RWMutex
	fallback *styler.Adapter
	adapters map[string]*styler.Adapter
	closed   bool
}

// New creates a style engine. cfg may be nil, in which case the default
// configuration is used. provider creates typefaces for font stylers and may
// be nil if no host object takes fonts. If locator is nil, resources are
// resolved from the folders named in cfg.
func New(cfg *config.Config, provider font.Provider, locator resource.Locator) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(cfg.TraceLevel())
	}
	if locator == nil {
		locator = &resource.Resolver{
			Documents: cfg.Resources.Documents,
			Temp:      cfg.Resources.Temp,
		}
	}
	e := &Engine{
		cfg:      cfg,
		om:       cssom.New(),
		fonts:    font.NewCache(provider, locator),
		metrics:  cfg.CSSMetrics(),
		adapters: make(map[string]*styler.Adapter),
	}
	e.fallback = styler.NewAdapter("default", e.StandardStylers()...)
	return e
}

// StandardStylers returns the stylers of all supported domains, configured
// for e. Clients may use them to build adapters for their own families.
func (e *Engine) StandardStylers() []styler.Styler {
	return styler.Standard(e.metrics, e.cfg.ShadowDefaults(), e.fonts,
		e.cfg.Fonts.Family, e.om.Keyframes())
}

// Config returns the configuration of e.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// CSSOM returns the object model of the stylesheets added to e.
func (e *Engine) CSSOM() *cssom.CSSOM {
	return e.om
}

// Fonts returns the font cache of e.
func (e *Engine) Fonts() *font.Cache {
	return e.fonts
}

// AddStyleSheet parses stylesheet source and adds its rules. Later
// stylesheets win over earlier ones. @font-face rules are registered with
// the font cache.
func (e *Engine) AddStyleSheet(text string) error {
	sheet, err := douceuradapter.Parse(text)
	if err != nil {
		return err
	}
	return e.add(sheet)
}

// AddHTML adds the stylesheets of all <style> elements of an HTML document.
func (e *Engine) AddHTML(doc *html.Node) error {
	for _, sheet := range douceuradapter.ExtractStyleElements(doc) {
		if err := e.add(sheet); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) add(sheet cssom.StyleSheet) error {
	if e.isClosed() {
		return ErrClosed
	}
	e.om.AddStyleSheet(sheet)
	for _, f := range sheet.FontFaces() {
		e.fonts.Register(f.Family, f.Weight, f.Style, f.Src)
	}
	return nil
}

// Register sets the adapter for a family of host objects.
func (e *Engine) Register(family string, a *styler.Adapter) {
	e.mx.Lock()
	defer e.mx.Unlock()
	e.adapters[family] = a
}

// Adapter returns the adapter for a family of host objects. Families without
// a registered adapter share one with the standard stylers.
func (e *Engine) Adapter(family string) *styler.Adapter {
	e.mx.RLock()
	defer e.mx.RUnlock()
	if a, ok := e.adapters[family]; ok {
		return a
	}
	return e.fallback
}

// Resolve runs the cascade for target, without applying styles. Inline
// styles of the target's element take part with highest specificity.
// parent is the context of the target's parent and may be nil.
func (e *Engine) Resolve(target style.Target, parent *style.Context) *style.Context {
	return cascade.Resolve(target, e.candidates(target), parent)
}

func (e *Engine) candidates(target style.Target) []*style.RuleSet {
	candidates := e.om.Match(target)
	if !target.IsSynthetic() {
		if inline := douceuradapter.InlineStyle(target.HTMLNode()); inline != nil {
			candidates = append(candidates, inline)
		}
	}
	return candidates
}

// Style resolves the styles of target and applies them. The resulting
// context is returned even if some stylers failed, to serve as parent
// context for the target's children.
func (e *Engine) Style(target style.Target, parent *style.Context) (*style.Context, error) {
	if e.isClosed() {
		return nil, ErrClosed
	}
	ctx := e.Resolve(target, parent)
	a := e.Adapter(target.Family())
	err := a.UpdateStyle([]*style.RuleSet{nil}, []*style.Context{ctx})
	return ctx, err
}

// StyleAll styles a batch of targets with one adapter call per family.
// Targets are styled without parent contexts, so nothing is inherited.
func (e *Engine) StyleAll(targets []style.Target) error {
	if e.isClosed() {
		return ErrClosed
	}
	type batch struct {
		ruleSets []*style.RuleSet
		contexts []*style.Context
	}
	var families []string
	batches := make(map[string]*batch)
	for _, t := range targets {
		f := t.Family()
		b, ok := batches[f]
		if !ok {
			b = &batch{}
			batches[f] = b
			families = append(families, f)
		}
		b.ruleSets = append(b.ruleSets, cascade.Merge(e.candidates(t)))
		b.contexts = append(b.contexts, style.NewContext(t, nil))
	}
	var errs error
	for _, f := range families {
		b := batches[f]
		tracer().Debugf("engine: styling %d targets of family %q", len(b.contexts), f)
		errs = multierr.Append(errs, e.Adapter(f).UpdateStyle(b.ruleSets, b.contexts))
	}
	return errs
}

// Close releases the caches of e. A closed engine refuses further work.
func (e *Engine) Close() error {
	e.mx.Lock()
	defer e.mx.Unlock()
	if e.closed {
		return fmt.Errorf("close: %w", ErrClosed)
	}
	e.closed = true
	e.fonts.Clear()
	tracer().Infof("engine: closed")
	return nil
}

func (e *Engine) isClosed() bool {
	e.mx.RLock()
	defer e.mx.RUnlock()
	return e.closed
}
