/*
Package styler applies resolved styles to host objects.

A style pass produces one style.Context per target. An Adapter walks the
contexts of a batch and hands every Styler the part of a context it is
responsible for. Stylers own disjoint sets of properties (transform, shadow,
font, color, …) and mutate host objects through small capability
interfaces. A host object which does not implement a styler's capability is
left alone.

Stylers keep no state across targets. Capability setters replace the
visual state of a host object, so applying the same styles twice has the
same effect as applying them once.

Errors of individual stylers do not stop a pass. They are reported as
*ApplyError values, aggregated for the batch.

# Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package styler

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.styler'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.styler")
}
