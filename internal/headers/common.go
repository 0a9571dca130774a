package headers

import (
	"golang.org/x/net/http/httpguts"
)

// names of the headers that this module sets or removes,
// in the order in which they are processed
const (
	CSP           = "Content-Security-Policy"
	CSPReportOnly = "Content-Security-Policy-Report-Only"
	COEP          = "Cross-Origin-Embedder-Policy"
	COOP          = "Cross-Origin-Opener-Policy"
	CORP          = "Cross-Origin-Resource-Policy"
	OAC           = "Origin-Agent-Cluster"
	RP            = "Referrer-Policy"
	STS           = "Strict-Transport-Security"
	XCTO          = "X-Content-Type-Options"
	XDPC          = "X-DNS-Prefetch-Control"
	XDO           = "X-Download-Options"
	XFO           = "X-Frame-Options"
	XPCDP         = "X-Permitted-Cross-Domain-Policies"
	XPB           = "X-Powered-By"
	XXP           = "X-XSS-Protection"
)

// fixed header values
const (
	ValueOAC  = "?1"
	ValueXCTO = "nosniff"
	ValueXDO  = "noopen"
	ValueXXP  = "0"
)

const (
	// DirectiveSep separates the directives of a CSP.
	DirectiveSep = ";"
	// SourceSep separates the elements of a CSP source list.
	SourceSep = " "
	// ValueSep separates the elements of a list-based header value.
	// Since whitespace is optional, let's not use any; see
	// https://httpwg.org/specs/rfc9110.html#abnf.extension.recipient.
	ValueSep = ","
)

// IsValidValue reports whether value may legally be sent
// as the value of a header field, [per RFC 9110].
//
// [per RFC 9110]: https://httpwg.org/specs/rfc9110.html#fields.values
func IsValidValue(value string) bool {
	return httpguts.ValidHeaderFieldValue(value)
}
