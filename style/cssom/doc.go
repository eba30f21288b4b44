/*
Package cssom provides the stylesheet object model of the style engine.

CSSOM is the "CSS Object Model", similar to the DOM for HTML. Here it is a
collection of rule sets in source order, together with the keyframe
animations and font faces the stylesheets define. Given an element, the
CSSOM finds the rule sets whose selectors match it, which is the input of
the cascade.

Selector matching relies on the great work of
https://godoc.org/github.com/andybalholm/cascadia. Host objects take part in
matching by exposing an HTML node as their identity.

Parsing stylesheet source is de-coupled from the object model by interface
StyleSheet. A concrete implementation may be found in sub-package
douceuradapter.

# Status

This is a very first draft. It is unstable and the API will change without
notice. Please be patient.

___________________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'restyle.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("restyle.cssom")
}
