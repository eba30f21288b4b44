/*
Package style holds the rule model of the style engine.

Declarations are single property/value pairs, parsed into typed values when
they are created. Rule sets group declarations under a selector, carrying the
selector's specificity and the rule's position in source order. A Context
collects the winning declarations for one target during one style pass, and
links to the context of the target's parent for inherited properties.

# Targets

Styles are applied to host objects, which this package knows only through
interface Styleable. Some visual parts of host objects (an icon within a tab,
the overflow indicator of a toolbar) have no identity of their own. They are
addressed as synthetic targets: a Target referencing the host together with
a tag naming the part.

	t := style.Synthetic(toolbar, "overflow-icon")

A Target never outlives the style pass it has been created for, thus it
never keeps a host object alive on its own.

# Status

The API may change without notice. Please be patient.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.style'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.style")
}
