package style

import (
	"fmt"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/npillmayer/restyle/css"
)

// Context holds the winning declaration per property for one target during
// one style pass. Contexts are created per pass and discarded after
// application.
//
// A context may link to the context of the target's parent. Lookups of
// inherited properties, and of properties set to 'inherit', continue there.
type Context struct {
	target Target
	parent *Context
	decls  map[string]Declaration
}

// NewContext creates an empty context for target. parent may be nil.
func NewContext(target Target, parent *Context) *Context {
	return &Context{
		target: target,
		parent: parent,
		decls:  make(map[string]Declaration),
	}
}

// Target returns the target of ctx.
func (ctx *Context) Target() Target {
	return ctx.target
}

// Parent returns the parent context, or nil.
func (ctx *Context) Parent() *Context {
	return ctx.parent
}

// Set makes d the current winner for its property, replacing any previous one.
func (ctx *Context) Set(d Declaration) {
	if ctx.decls == nil {
		ctx.decls = make(map[string]Declaration)
	}
	ctx.decls[d.Name] = d
}

// Get returns the declaration for property name, without inheritance.
func (ctx *Context) Get(name string) (Declaration, bool) {
	if ctx == nil {
		return Declaration{}, false
	}
	d, ok := ctx.decls[name]
	return d, ok
}

// Lookup returns the effective declaration for property name. It follows the
// parent chain for inherited properties not set locally, and for properties
// explicitly set to 'inherit'.
func (ctx *Context) Lookup(name string) (Declaration, bool) {
	for c := ctx; c != nil; c = c.parent {
		d, ok := c.decls[name]
		switch {
		case ok && !css.IsInherit(d.Value):
			return d, true
		case ok: // explicit 'inherit'
			continue
		case !IsCascading(name):
			return Declaration{}, false
		}
	}
	return Declaration{}, false
}

// Apply folds the valid declarations of rs into ctx, in insertion order.
// Important declarations of ctx are not overridden by normal ones.
// rs may be nil.
func (ctx *Context) Apply(rs *RuleSet) {
	for _, d := range rs.Declarations() {
		if !d.Valid() {
			continue
		}
		if cur, ok := ctx.decls[d.Name]; ok && cur.Important && !d.Important {
			continue
		}
		ctx.Set(d)
	}
}

// Len returns the count of properties set in ctx.
func (ctx *Context) Len() int {
	if ctx == nil {
		return 0
	}
	return len(ctx.decls)
}

// Names returns the names of the properties set in ctx, in natural order.
func (ctx *Context) Names() []string {
	names := make([]string, 0, ctx.Len())
	if ctx == nil {
		return names
	}
	for name := range ctx.decls {
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))
	return names
}

// Subset returns the effective declarations for names, with inheritance.
// Properties without a value are left out.
func (ctx *Context) Subset(names []string) map[string]Declaration {
	m := make(map[string]Declaration, len(names))
	for _, name := range names {
		if d, ok := ctx.Lookup(name); ok {
			m[name] = d
		}
	}
	return m
}

func (ctx *Context) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "context[%s] = {\n", ctx.target)
	for _, name := range ctx.Names() {
		fmt.Fprintf(&b, "  %s;\n", ctx.decls[name])
	}
	b.WriteString("}")
	return b.String()
}
