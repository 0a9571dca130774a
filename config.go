package helmet

// A Config configures which security headers get set (or removed)
// and with which values. The mechanics of and interplay between
// this type's various fields are explained below.
//
// Each field corresponds to one security header and can be in one of
// three states:
//
//   - nil: the header is processed in accordance with its default
//     behavior, which, for every header other than
//     Cross-Origin-Embedder-Policy, is to be set to its default value;
//   - non-nil with its Disabled field set: the header is left alone;
//   - non-nil with its Disabled field unset: the header is set in
//     accordance with the options specified in the field
//     (unspecified options take their default values).
//
// For example, the following configuration sets all the default headers
// except X-XSS-Protection, and sets X-Frame-Options to DENY:
//
//	cfg := helmet.Config{
//	  XFrameOptions:  &helmet.XFrameOptions{Action: "deny"},
//	  XXSSProtection: &helmet.Toggle{Disabled: true},
//	}
//
// # Legacy names
//
// For compatibility with configurations written for older versions of
// [helmet], some headers can be configured via one of two fields:
// a canonical one and a legacy one (e.g. StrictTransportSecurity and HSTS).
// Specifying both fields of such a pair is prohibited,
// even if both are disabled.
//
// # ContentSecurityPolicy
//
// ContentSecurityPolicy configures the [Content-Security-Policy] header.
// By default, the following policy is applied:
//
//	default-src 'self';
//	base-uri 'self';
//	font-src 'self' https: data:;
//	form-action 'self';
//	frame-ancestors 'self';
//	img-src 'self' data:;
//	object-src 'none';
//	script-src 'self';
//	script-src-attr 'none';
//	style-src 'self' https: 'unsafe-inline';
//	upgrade-insecure-requests
//
// (without the line breaks).
//
// # CrossOriginEmbedderPolicy
//
// CrossOriginEmbedderPolicy configures the [Cross-Origin-Embedder-Policy]
// header. Contrary to all other headers, it is not set by default,
// because it breaks the loading of cross-origin resources that do not
// opt in via CORS or Cross-Origin-Resource-Policy.
//
// [Content-Security-Policy]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Content-Security-Policy
// [Cross-Origin-Embedder-Policy]: https://developer.mozilla.org/en-US/docs/Web/HTTP/Headers/Cross-Origin-Embedder-Policy
// [helmet]: https://helmetjs.github.io/
type Config struct {
	// Precludes comparability, unkeyed struct literals, and conversion to and
	// from third-party types.
	_ [0]func()

	ContentSecurityPolicy     *ContentSecurityPolicy
	CrossOriginEmbedderPolicy *CrossOriginEmbedderPolicy
	CrossOriginOpenerPolicy   *CrossOriginOpenerPolicy
	CrossOriginResourcePolicy *CrossOriginResourcePolicy
	OriginAgentCluster        *Toggle
	ReferrerPolicy            *ReferrerPolicy

	StrictTransportSecurity *StrictTransportSecurity
	HSTS                    *StrictTransportSecurity // legacy name

	XContentTypeOptions *Toggle
	NoSniff             *Toggle // legacy name

	XDNSPrefetchControl *XDNSPrefetchControl
	DNSPrefetchControl  *XDNSPrefetchControl // legacy name

	XDownloadOptions *Toggle
	IENoOpen         *Toggle // legacy name

	XFrameOptions *XFrameOptions
	Frameguard    *XFrameOptions // legacy name

	XPermittedCrossDomainPolicies *XPermittedCrossDomainPolicies
	PermittedCrossDomainPolicies  *XPermittedCrossDomainPolicies // legacy name

	// XPoweredBy, when enabled, removes the X-Powered-By header
	// rather than setting it.
	XPoweredBy    *Toggle
	HidePoweredBy *Toggle // legacy name

	XXSSProtection *Toggle
	XSSFilter      *Toggle // legacy name
}

// A Toggle configures a header whose value is fixed:
//
//	Origin-Agent-Cluster: ?1
//	X-Content-Type-Options: nosniff
//	X-Download-Options: noopen
//	X-XSS-Protection: 0
//
// and the removal of the X-Powered-By header.
type Toggle struct {
	_        [0]func()
	Disabled bool
}

// A ContentSecurityPolicy configures the Content-Security-Policy header.
//
// Directives are processed in order. Directive names can be specified in
// kebab-case (e.g. "script-src") or in camelCase (e.g. "scriptSrc");
// specifying the same directive twice (even under two spellings)
// is prohibited. Directive names must consist of ASCII letters, digits,
// and hyphens.
//
// Unless NoDefaults is set, the default directives (see [Config]) that
// Directives neither sets nor disables are appended after the specified
// ones. If Directives is nil, the default directives are used;
// a non-nil but empty Directives with NoDefaults set is invalid.
//
// If ReportOnly is set, the policy is sent in the
// Content-Security-Policy-Report-Only header instead.
type ContentSecurityPolicy struct {
	_          [0]func()
	Disabled   bool
	Directives []Directive
	NoDefaults bool
	ReportOnly bool
}

// A Directive is a Content-Security-Policy directive.
//
// Sources must be non-empty, unless the directive is one of
// upgrade-insecure-requests, block-all-mixed-content, and sandbox.
// No source may be empty or contain a semicolon or a comma.
//
// Disabled, when set, removes the directive from the default policy;
// default-src cannot be disabled. The Sources of a disabled directive
// are ignored.
type Directive struct {
	_        [0]func()
	Name     string
	Sources  []string
	Disabled bool
}

// A CrossOriginEmbedderPolicy configures the
// Cross-Origin-Embedder-Policy header.
// Policy must be one of "require-corp" (default) and "credentialless".
type CrossOriginEmbedderPolicy struct {
	_        [0]func()
	Disabled bool
	Policy   string
}

// A CrossOriginOpenerPolicy configures the Cross-Origin-Opener-Policy header.
// Policy must be one of "same-origin" (default), "same-origin-allow-popups",
// and "unsafe-none".
type CrossOriginOpenerPolicy struct {
	_        [0]func()
	Disabled bool
	Policy   string
}

// A CrossOriginResourcePolicy configures the
// Cross-Origin-Resource-Policy header.
// Policy must be one of "same-origin" (default), "same-site",
// and "cross-origin".
type CrossOriginResourcePolicy struct {
	_        [0]func()
	Disabled bool
	Policy   string
}

// A ReferrerPolicy configures the Referrer-Policy header.
//
// A nil Tokens results in "no-referrer". Otherwise, Tokens must contain
// at least one token and no duplicates; permitted tokens are
// "no-referrer", "no-referrer-when-downgrade", "same-origin", "origin",
// "strict-origin", "origin-when-cross-origin",
// "strict-origin-when-cross-origin", "unsafe-url", and the empty string.
// Tokens are listed in the order in which they are specified, so that
// you can specify fallbacks for older browsers before the policy you
// actually want:
//
//	Tokens: []string{"no-referrer", "strict-origin-when-cross-origin"},
type ReferrerPolicy struct {
	_        [0]func()
	Disabled bool
	Tokens   []string
}

// A StrictTransportSecurity configures the Strict-Transport-Security header.
//
// A nil MaxAgeInSeconds results in a max-age of 365 days;
// negative values are prohibited.
// A nil IncludeSubDomains results in the includeSubDomains directive
// being present.
// Preload, when set, adds the preload directive.
type StrictTransportSecurity struct {
	_                 [0]func()
	Disabled          bool
	MaxAgeInSeconds   *int
	IncludeSubDomains *bool
	Preload           bool
}

// An XDNSPrefetchControl configures the X-DNS-Prefetch-Control header,
// whose value is "on" if Allow is set, and "off" otherwise.
type XDNSPrefetchControl struct {
	_        [0]func()
	Disabled bool
	Allow    bool
}

// An XFrameOptions configures the X-Frame-Options header.
// Action must be one of "sameorigin" (default) and "deny"; matching is
// case-insensitive and "same-origin" is accepted as a synonym of
// "sameorigin". The header value is always upper-case.
type XFrameOptions struct {
	_        [0]func()
	Disabled bool
	Action   string
}

// An XPermittedCrossDomainPolicies configures the
// X-Permitted-Cross-Domain-Policies header.
// PermittedPolicies must be one of "none" (default), "master-only",
// "by-content-type", and "all".
type XPermittedCrossDomainPolicies struct {
	_                 [0]func()
	Disabled          bool
	PermittedPolicies string
}
