package styler

import (
	"errors"
	"fmt"

	"github.com/npillmayer/restyle/css"
	"github.com/npillmayer/restyle/style"
	"go.uber.org/multierr"
)

// Styler applies the properties of one domain to targets.
type Styler interface {
	Name() string
	Properties() []string // properties this styler is responsible for
	Apply(target style.Target, values Values) error
}

// Values are the effective declarations of the properties a styler owns.
// Lookups of absent properties fall back to their initial values.
type Values map[string]style.Declaration

// Has is true if property name has been set for the target, either
// directly or by inheritance.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

// Lookup returns the declaration for property name, or the declaration of
// its initial value.
func (v Values) Lookup(name string) (style.Declaration, bool) {
	if d, ok := v[name]; ok {
		return d, true
	}
	return style.InitialDeclaration(name)
}

// Dimension returns the value of property name if it is a dimension.
func (v Values) Dimension(name string) (css.Dimension, bool) {
	d, ok := v.Lookup(name)
	if !ok {
		return css.Dimension{}, false
	}
	dim, ok := d.Value.(css.Dimension)
	return dim, ok
}

// Color returns the value of property name if it is a color.
func (v Values) Color(name string) (css.Color, bool) {
	d, ok := v.Lookup(name)
	if !ok {
		return css.Color{}, false
	}
	c, ok := d.Value.(css.Color)
	return c, ok
}

// Keyword returns the value of property name if it is a keyword.
func (v Values) Keyword(name string) (string, bool) {
	d, ok := v.Lookup(name)
	if !ok {
		return "", false
	}
	k, ok := d.Value.(css.Keyword)
	return string(k), ok
}

// --- Errors ----------------------------------------------------------------

// ErrBatchMismatch is returned by UpdateStyle if the number of rule sets
// differs from the number of contexts.
var ErrBatchMismatch = errors.New("rule sets and contexts do not pair up")

// ErrNoPart is reported for synthetic targets whose host does not provide
// the part.
var ErrNoPart = errors.New("host object has no such part")

// ErrNoTarget is reported for contexts without a target.
var ErrNoTarget = errors.New("context has no target")

// ApplyError is the failure of a single styler on a single target.
type ApplyError struct {
	Target style.Target
	Styler string // empty if the target could not be styled at all
	Err    error
}

func (e *ApplyError) Error() string {
	if e.Styler == "" {
		return fmt.Sprintf("styling %s: %v", e.Target, e.Err)
	}
	return fmt.Sprintf("styling %s with %s: %v", e.Target, e.Styler, e.Err)
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// --- Adapter ---------------------------------------------------------------

// Adapter dispatches contexts to an ordered list of stylers. Usually there
// is one adapter per family of host objects.
type Adapter struct {
	name    string
	stylers []Styler
}

// NewAdapter creates an adapter. Stylers are applied in the order given.
func NewAdapter(name string, stylers ...Styler) *Adapter {
	a := &Adapter{name: name}
	for _, s := range stylers {
		if s != nil {
			a.stylers = append(a.stylers, s)
		}
	}
	return a
}

// Name returns the name of the adapter.
func (a *Adapter) Name() string {
	return a.name
}

// Stylers returns the stylers of a, in application order.
func (a *Adapter) Stylers() []Styler {
	s := make([]Styler, len(a.stylers))
	copy(s, a.stylers)
	return s
}

// UpdateStyle applies a batch. For every position i, the valid declarations
// of ruleSets[i] (which may be nil) are folded into contexts[i], then every
// styler is applied to the context's target.
//
// Failures of single stylers are collected as *ApplyError and returned
// together, once the whole batch has been processed. If the lengths of
// ruleSets and contexts differ, nothing is applied and ErrBatchMismatch is
// returned.
func (a *Adapter) UpdateStyle(ruleSets []*style.RuleSet, contexts []*style.Context) error {
	if len(ruleSets) != len(contexts) {
		return fmt.Errorf("%w: %d rule sets, %d contexts", ErrBatchMismatch, len(ruleSets), len(contexts))
	}
	var errs error
	for i, ctx := range contexts {
		if ctx == nil {
			errs = multierr.Append(errs, &ApplyError{Err: ErrNoTarget})
			continue
		}
		ctx.Apply(ruleSets[i])
		errs = multierr.Append(errs, a.apply(ctx))
	}
	return errs
}

func (a *Adapter) apply(ctx *style.Context) (errs error) {
	target := ctx.Target()
	if target.IsZero() {
		return &ApplyError{Err: ErrNoTarget}
	}
	if target.Receiver() == nil {
		err := &ApplyError{Target: target, Err: ErrNoPart}
		tracer().Errorf("%v", err)
		return err
	}
	tracer().Debugf("%s: styling %s", a.name, target)
	for _, s := range a.stylers {
		values := Values(ctx.Subset(s.Properties()))
		if len(values) == 0 {
			continue
		}
		if err := safeApply(s, target, values); err != nil {
			ae := &ApplyError{Target: target, Styler: s.Name(), Err: err}
			tracer().Errorf("%v", ae)
			errs = multierr.Append(errs, ae)
		}
	}
	return errs
}

func safeApply(s Styler, target style.Target, values Values) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.Apply(target, values)
}
