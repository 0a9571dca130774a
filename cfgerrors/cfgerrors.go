/*
Package cfgerrors provides functionalities for programmatically handling
configuration errors produced by package [github.com/jub0bs/helmet].

Most users of package [github.com/jub0bs/helmet] have no use for this package:
a configuration error is best treated as fatal at startup.
However, services that let their tenants or operators configure security
headers (e.g. via some Web portal or some command-line interface) may find
this package useful: it allows them to inspect the offending header,
option, and value, and to report the mistake in their own words.
*/
package cfgerrors

import "fmt"

// A ConfigError indicates an unacceptable security-header configuration.
// Such errors are the only kind of error that [github.com/jub0bs/helmet]
// produces when compiling a configuration.
//
// The Reason field may take one of five values:
//   - "invalid": Value is not acceptable for Option;
//   - "duplicate": Value was specified more than once;
//   - "missing": no value was specified where at least one is required;
//   - "required": Value is required and cannot be disabled;
//   - "conflict": the option for Header was specified both under its
//     canonical name and under its legacy name, Option.
//
// The Directive field is only populated for errors pertaining to the value
// of some Content-Security-Policy directive.
type ConfigError struct {
	Header    string // name of the header concerned, e.g. "X-Frame-Options"
	Option    string // e.g. "action", "directive name", "hsts"
	Directive string // CSP directive concerned, if any
	Value     string // the unacceptable value that was specified
	Reason    string // invalid | duplicate | missing | required | conflict
}

func (err *ConfigError) Error() string {
	switch err.Reason {
	case "conflict":
		const tmpl = "helmet: %s option was specified twice; remove %q"
		return fmt.Sprintf(tmpl, err.Header, err.Option)
	case "missing":
		const tmpl = "helmet: %s received no %s"
		return fmt.Sprintf(tmpl, err.Header, err.Option)
	case "required":
		const tmpl = "helmet: %s needs a %s %q, which cannot be disabled"
		return fmt.Sprintf(tmpl, err.Header, err.Option, err.Value)
	case "invalid":
		if err.Directive != "" {
			const tmpl = "helmet: %s received an invalid %s %q for directive %q"
			return fmt.Sprintf(tmpl, err.Header, err.Option, err.Value, err.Directive)
		}
		const tmpl = "helmet: %s received an invalid %s %q"
		return fmt.Sprintf(tmpl, err.Header, err.Option, err.Value)
	case "duplicate":
		const tmpl = "helmet: %s received a duplicate %s %q"
		return fmt.Sprintf(tmpl, err.Header, err.Option, err.Value)
	default:
		// We never produce such errors; this case only exists to make the
		// compiler happy.
		return "helmet: unknown issue"
	}
}
