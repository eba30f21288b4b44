/*
Package cascade decides, for a target and the rule sets matching it, which
declaration wins for each property.

Rule sets are ordered by specificity, then by source order. Walking them in
that order, every valid declaration overwrites the current value of its
property, so the last one written wins:

  - the rule set with higher specificity wins, regardless of source order
  - with equal specificity, the rule set later in source order wins
  - within a rule set, a later declaration wins over an earlier one

Declarations marked !important are applied in a second walk, in the same
order, after all normal declarations. Invalid declarations are skipped.
Properties not declared anywhere stay absent: initial values are the
business of the stylers.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cascade

import (
	"sort"

	"github.com/npillmayer/restyle/style"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.cascade'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.cascade")
}

// Resolve creates a style context for target from the rule sets matching it.
// parent is the context of the target's parent and may be nil. candidates is
// not modified.
func Resolve(target style.Target, candidates []*style.RuleSet, parent *style.Context) *style.Context {
	ctx := style.NewContext(target, parent)
	for _, d := range winners(candidates) {
		ctx.Set(d)
	}
	tracer().Debugf("cascade: %d properties for %s from %d rule sets", ctx.Len(), target, len(candidates))
	return ctx
}

// Merge collapses candidates into a single rule set holding the winning
// declaration for every property, ordered by property name.
func Merge(candidates []*style.RuleSet) *style.RuleSet {
	w := winners(candidates)
	names := make([]string, 0, len(w))
	for name := range w {
		names = append(names, name)
	}
	sort.Strings(names)
	rs := style.NewRuleSet(nil, 0)
	for _, name := range names {
		rs.AddDeclaration(w[name])
	}
	return rs
}

// Sort returns a copy of rule sets ordered ascending by (specificity, source
// order). The sort is stable, so rule sets equal in both keep their order.
func Sort(ruleSets []*style.RuleSet) []*style.RuleSet {
	sorted := make([]*style.RuleSet, 0, len(ruleSets))
	for _, rs := range ruleSets {
		if rs != nil {
			sorted = append(sorted, rs)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if c := sorted[i].Specificity().Compare(sorted[j].Specificity()); c != 0 {
			return c < 0
		}
		return sorted[i].Order() < sorted[j].Order()
	})
	return sorted
}

func winners(candidates []*style.RuleSet) map[string]style.Declaration {
	sorted := Sort(candidates)
	w := make(map[string]style.Declaration)
	for _, important := range []bool{false, true} {
		for _, rs := range sorted {
			for _, d := range rs.Declarations() {
				if d.Important != important {
					continue
				}
				if !d.Valid() {
					tracer().Debugf("cascade: skipping invalid declaration %s: %v", d, d.Err)
					continue
				}
				w[d.Name] = d
			}
		}
	}
	return w
}
