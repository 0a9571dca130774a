// Package policies validates the options of security headers other than
// Content-Security-Policy and computes the corresponding header values.
//
// In each function of this package, an empty option value stands for
// the header's default value.
package policies

import (
	"strconv"
	"strings"

	"github.com/jub0bs/helmet/cfgerrors"
	"github.com/jub0bs/helmet/internal/headers"
	"github.com/jub0bs/helmet/internal/util"
)

// CrossOriginEmbedderPolicy returns the value of the
// [Cross-Origin-Embedder-Policy] header.
//
// [Cross-Origin-Embedder-Policy]: https://html.spec.whatwg.org/multipage/browsers.html#coep
func CrossOriginEmbedderPolicy(policy string) (string, error) {
	return oneOf(headers.COEP, "policy", policy, "require-corp",
		"require-corp",
		"credentialless",
	)
}

// CrossOriginOpenerPolicy returns the value of the
// [Cross-Origin-Opener-Policy] header.
//
// [Cross-Origin-Opener-Policy]: https://html.spec.whatwg.org/multipage/browsers.html#cross-origin-opener-policies
func CrossOriginOpenerPolicy(policy string) (string, error) {
	return oneOf(headers.COOP, "policy", policy, "same-origin",
		"same-origin",
		"same-origin-allow-popups",
		"unsafe-none",
	)
}

// CrossOriginResourcePolicy returns the value of the
// [Cross-Origin-Resource-Policy] header.
//
// [Cross-Origin-Resource-Policy]: https://fetch.spec.whatwg.org/#cross-origin-resource-policy-header
func CrossOriginResourcePolicy(policy string) (string, error) {
	return oneOf(headers.CORP, "policy", policy, "same-origin",
		"same-origin",
		"same-site",
		"cross-origin",
	)
}

// XPermittedCrossDomainPolicies returns the value of the
// X-Permitted-Cross-Domain-Policies header.
func XPermittedCrossDomainPolicies(policy string) (string, error) {
	return oneOf(headers.XPCDP, "permitted policies", policy, "none",
		"none",
		"master-only",
		"by-content-type",
		"all",
	)
}

// oneOf returns value if it's one of allowed, def if value is empty,
// and a non-nil error otherwise.
func oneOf(header, option, value, def string, allowed ...string) (string, error) {
	if value == "" {
		return def, nil
	}
	for _, a := range allowed {
		if value == a {
			return value, nil
		}
	}
	err := &cfgerrors.ConfigError{
		Header: header,
		Option: option,
		Value:  value,
		Reason: "invalid",
	}
	return "", err
}

// ReferrerPolicy returns the value of the [Referrer-Policy] header.
// A nil tokens stands for the default policy,
// whereas a non-nil but empty tokens is invalid.
// The order of tokens is preserved, because browsers use the last
// token they support; see [Referrer Policy, section 8.1].
//
// [Referrer-Policy]: https://www.w3.org/TR/referrer-policy/
// [Referrer Policy, section 8.1]: https://www.w3.org/TR/referrer-policy/#parse-referrer-policy-from-header
func ReferrerPolicy(tokens []string) (string, error) {
	if tokens == nil {
		return "no-referrer", nil
	}
	if len(tokens) == 0 {
		err := &cfgerrors.ConfigError{
			Header: headers.RP,
			Option: "policy tokens",
			Reason: "missing",
		}
		return "", err
	}
	var seen util.Set
	for _, tok := range tokens {
		if !referrerPolicyTokens.Contains(tok) {
			err := &cfgerrors.ConfigError{
				Header: headers.RP,
				Option: "policy token",
				Value:  tok,
				Reason: "invalid",
			}
			return "", err
		}
		if !seen.Add(tok) {
			err := &cfgerrors.ConfigError{
				Header: headers.RP,
				Option: "policy token",
				Value:  tok,
				Reason: "duplicate",
			}
			return "", err
		}
	}
	return strings.Join(tokens, headers.ValueSep), nil
}

var referrerPolicyTokens = util.NewSet(
	"no-referrer",
	"no-referrer-when-downgrade",
	"same-origin",
	"origin",
	"strict-origin",
	"origin-when-cross-origin",
	"strict-origin-when-cross-origin",
	"unsafe-url",
	"",
)

// XFrameOptions returns the value of the [X-Frame-Options] header.
// Matching against action is ASCII case-insensitive,
// and "same-origin" is tolerated as a synonym of "sameorigin".
//
// [X-Frame-Options]: https://html.spec.whatwg.org/multipage/document-lifecycle.html#the-x-frame-options-header
func XFrameOptions(action string) (string, error) {
	if action == "" {
		return "SAMEORIGIN", nil
	}
	switch normalized := util.ByteUppercase(action); normalized {
	case "SAME-ORIGIN":
		return "SAMEORIGIN", nil
	case "DENY", "SAMEORIGIN":
		return normalized, nil
	default:
		err := &cfgerrors.ConfigError{
			Header: headers.XFO,
			Option: "action",
			Value:  action,
			Reason: "invalid",
		}
		return "", err
	}
}

// XDNSPrefetchControl returns the value of the X-DNS-Prefetch-Control header.
func XDNSPrefetchControl(allow bool) string {
	if allow {
		return "on"
	}
	return "off"
}

// DefaultMaxAge is the default max-age value (in seconds) of the
// Strict-Transport-Security header: 365 days.
const DefaultMaxAge = 365 * 24 * 60 * 60

// StrictTransportSecurity returns the value of the
// [Strict-Transport-Security] header.
// A nil maxAge stands for [DefaultMaxAge].
// A nil includeSubDomains stands for true.
//
// [Strict-Transport-Security]: https://www.rfc-editor.org/rfc/rfc6797#section-6.1
func StrictTransportSecurity(maxAge *int, includeSubDomains *bool, preload bool) (string, error) {
	delta := DefaultMaxAge
	if maxAge != nil {
		delta = *maxAge
	}
	if delta < 0 {
		err := &cfgerrors.ConfigError{
			Header: headers.STS,
			Option: "max-age",
			Value:  strconv.Itoa(delta),
			Reason: "invalid",
		}
		return "", err
	}
	var b strings.Builder
	b.WriteString("max-age=")
	b.WriteString(strconv.Itoa(delta))
	if includeSubDomains == nil || *includeSubDomains {
		b.WriteString("; includeSubDomains")
	}
	if preload {
		b.WriteString("; preload")
	}
	return b.String(), nil
}
