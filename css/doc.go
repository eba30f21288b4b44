/*
Package css holds the typed value model for style property values.

Property values start out as text in a stylesheet. Package lexer scans that
text into tokens, package parse turns tokens into the values of this package:
dimensioned numbers, transform function calls, colors and plain keywords.
Values are immutable once created and may be shared between any number of
style targets.

Dimensions carry a magnitude and a concrete unit. The unit family (length,
angle, time, ...) is derived from the unit, so a dimension can never carry a
unit which does not belong to its family. Relative lengths (em, ex, device
pixels) are resolved against Metrics, which a host supplies.

# Status

The API may change without notice. Please be patient.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'restyle.css'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.css")
}
