package calc

import "fmt"

// Diagnostic, when set, receives the warnings the calculators otherwise
// swallow: degraded fallback series and IRR runs that exhaust their
// iteration budget. Return contracts never change when it is set.
// Install it once at startup; concurrent calculation calls only read it.
var Diagnostic func(component, message string)

func diag(component, format string, args ...interface{}) {
	if Diagnostic != nil {
		Diagnostic(component, fmt.Sprintf(format, args...))
	}
}
