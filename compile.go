package helmet

import (
	"github.com/jub0bs/helmet/cfgerrors"
	"github.com/jub0bs/helmet/internal/csp"
	"github.com/jub0bs/helmet/internal/headers"
	"github.com/jub0bs/helmet/internal/policies"
)

// names of the headers that this package sets or removes
const (
	HeaderContentSecurityPolicy           = headers.CSP
	HeaderContentSecurityPolicyReportOnly = headers.CSPReportOnly
	HeaderCrossOriginEmbedderPolicy       = headers.COEP
	HeaderCrossOriginOpenerPolicy         = headers.COOP
	HeaderCrossOriginResourcePolicy       = headers.CORP
	HeaderOriginAgentCluster              = headers.OAC
	HeaderReferrerPolicy                  = headers.RP
	HeaderStrictTransportSecurity         = headers.STS
	HeaderXContentTypeOptions             = headers.XCTO
	HeaderXDNSPrefetchControl             = headers.XDPC
	HeaderXDownloadOptions                = headers.XDO
	HeaderXFrameOptions                   = headers.XFO
	HeaderXPermittedCrossDomainPolicies   = headers.XPCDP
	HeaderXPoweredBy                      = headers.XPB
	HeaderXXSSProtection                  = headers.XXP
)

// An Op is the kind of an [Instruction].
type Op uint8

const (
	OpSet    Op = iota // set a header
	OpRemove           // remove a header
)

// An Instruction is the outcome of compiling the configuration of one
// security header: either "set header Name to Value"
// or "remove header Name". Value is empty for the latter.
type Instruction struct {
	Op    Op
	Name  string
	Value string
}

func (ins Instruction) String() string {
	if ins.Op == OpRemove {
		return "-" + ins.Name
	}
	return ins.Name + ": " + ins.Value
}

// A Sink receives the instructions that result from compiling a [Config].
// Implementations need not be safe for concurrent use.
type Sink interface {
	SetHeader(name, value string)
	RemoveHeader(name string)
}

// SinkFuncs adapts a pair of functions to the [Sink] interface.
// Either function may be nil, in which case the corresponding
// instructions are dropped.
type SinkFuncs struct {
	Set    func(name, value string)
	Remove func(name string)
}

// SetHeader calls sf.Set(name, value), if sf.Set is non-nil.
func (sf SinkFuncs) SetHeader(name, value string) {
	if sf.Set != nil {
		sf.Set(name, value)
	}
}

// RemoveHeader calls sf.Remove(name), if sf.Remove is non-nil.
func (sf SinkFuncs) RemoveHeader(name string) {
	if sf.Remove != nil {
		sf.Remove(name)
	}
}

// Compile validates cfg and returns the resulting instructions,
// in a fixed order:
//
//  1. Content-Security-Policy (or Content-Security-Policy-Report-Only)
//  2. Cross-Origin-Embedder-Policy
//  3. Cross-Origin-Opener-Policy
//  4. Cross-Origin-Resource-Policy
//  5. Origin-Agent-Cluster
//  6. Referrer-Policy
//  7. Strict-Transport-Security
//  8. X-Content-Type-Options
//  9. X-DNS-Prefetch-Control
//  10. X-Download-Options
//  11. X-Frame-Options
//  12. X-Permitted-Cross-Domain-Policies
//  13. X-Powered-By (removal)
//  14. X-XSS-Protection
//
// Disabled headers are skipped. A nil cfg is equivalent to a pointer to
// the zero value of [Config].
//
// If cfg is invalid, Compile returns a nil slice and some non-nil error;
// if you need to programmatically handle that error,
// rely on package [github.com/jub0bs/helmet/cfgerrors].
//
// Compiling the same configuration always yields the same instructions.
func Compile(cfg *Config) ([]Instruction, error) {
	var buf buffer
	if err := Apply(cfg, &buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Apply validates cfg and emits the resulting instructions to sink,
// in the same order as [Compile] would return them.
//
// Apply stops at the first configuration error it encounters and returns
// that error; note that sink may by then have received some instructions.
// If you need all-or-nothing semantics, use [Compile] instead.
func Apply(cfg *Config, sink Sink) error {
	if cfg == nil {
		cfg = new(Config)
	}
	if err := checkAliases(cfg); err != nil {
		return err
	}
	for _, p := range processors {
		if err := p(cfg, sink); err != nil {
			return err
		}
	}
	return nil
}

type buffer []Instruction

func (b *buffer) SetHeader(name, value string) {
	*b = append(*b, Instruction{Op: OpSet, Name: name, Value: value})
}

func (b *buffer) RemoveHeader(name string) {
	*b = append(*b, Instruction{Op: OpRemove, Name: name})
}

// An alias describes a header that can be configured via two fields of
// Config.
type alias struct {
	header string
	legacy string // name of the legacy option
	both   func(*Config) bool
}

var aliases = [...]alias{
	{headers.STS, "hsts", func(c *Config) bool {
		return c.StrictTransportSecurity != nil && c.HSTS != nil
	}},
	{headers.XCTO, "noSniff", func(c *Config) bool {
		return c.XContentTypeOptions != nil && c.NoSniff != nil
	}},
	{headers.XDPC, "dnsPrefetchControl", func(c *Config) bool {
		return c.XDNSPrefetchControl != nil && c.DNSPrefetchControl != nil
	}},
	{headers.XDO, "ieNoOpen", func(c *Config) bool {
		return c.XDownloadOptions != nil && c.IENoOpen != nil
	}},
	{headers.XFO, "frameguard", func(c *Config) bool {
		return c.XFrameOptions != nil && c.Frameguard != nil
	}},
	{headers.XPCDP, "permittedCrossDomainPolicies", func(c *Config) bool {
		return c.XPermittedCrossDomainPolicies != nil && c.PermittedCrossDomainPolicies != nil
	}},
	{headers.XPB, "hidePoweredBy", func(c *Config) bool {
		return c.XPoweredBy != nil && c.HidePoweredBy != nil
	}},
	{headers.XXP, "xssFilter", func(c *Config) bool {
		return c.XXSSProtection != nil && c.XSSFilter != nil
	}},
}

func checkAliases(cfg *Config) error {
	for _, a := range aliases {
		if a.both(cfg) {
			err := &cfgerrors.ConfigError{
				Header: a.header,
				Option: a.legacy,
				Reason: "conflict",
			}
			return err
		}
	}
	return nil
}

// either returns canonical if it's non-nil, and legacy otherwise.
// Precondition: canonical and legacy are not both non-nil.
func either[T any](canonical, legacy *T) *T {
	if canonical != nil {
		return canonical
	}
	return legacy
}

// A processor emits at most one instruction
// in accordance with one field (or pair of fields) of a Config.
type processor func(*Config, Sink) error

var processors = [...]processor{
	processCSP,
	processCOEP,
	processCOOP,
	processCORP,
	processOAC,
	processRP,
	processSTS,
	processXCTO,
	processXDPC,
	processXDO,
	processXFO,
	processXPCDP,
	processXPB,
	processXXP,
}

func processCSP(cfg *Config, sink Sink) error {
	opts := cfg.ContentSecurityPolicy
	if opts == nil {
		opts = new(ContentSecurityPolicy)
	}
	if opts.Disabled {
		return nil
	}
	var entries []csp.Entry
	if opts.Directives != nil {
		entries = make([]csp.Entry, len(opts.Directives))
	}
	for i, d := range opts.Directives {
		entries[i] = csp.Entry{
			Name:     d.Name,
			Tokens:   d.Sources,
			Disabled: d.Disabled,
		}
	}
	ds, err := csp.Normalize(entries, !opts.NoDefaults)
	if err != nil {
		return err
	}
	value, err := ds.Serialize()
	if err != nil {
		return err
	}
	name := headers.CSP
	if opts.ReportOnly {
		name = headers.CSPReportOnly
	}
	sink.SetHeader(name, value)
	return nil
}

func processCOEP(cfg *Config, sink Sink) error {
	opts := cfg.CrossOriginEmbedderPolicy
	if opts == nil || opts.Disabled { // disabled by default
		return nil
	}
	value, err := policies.CrossOriginEmbedderPolicy(opts.Policy)
	if err != nil {
		return err
	}
	sink.SetHeader(headers.COEP, value)
	return nil
}

func processCOOP(cfg *Config, sink Sink) error {
	opts := cfg.CrossOriginOpenerPolicy
	if opts == nil {
		opts = new(CrossOriginOpenerPolicy)
	}
	if opts.Disabled {
		return nil
	}
	value, err := policies.CrossOriginOpenerPolicy(opts.Policy)
	if err != nil {
		return err
	}
	sink.SetHeader(headers.COOP, value)
	return nil
}

func processCORP(cfg *Config, sink Sink) error {
	opts := cfg.CrossOriginResourcePolicy
	if opts == nil {
		opts = new(CrossOriginResourcePolicy)
	}
	if opts.Disabled {
		return nil
	}
	value, err := policies.CrossOriginResourcePolicy(opts.Policy)
	if err != nil {
		return err
	}
	sink.SetHeader(headers.CORP, value)
	return nil
}

func processOAC(cfg *Config, sink Sink) error {
	if enabled(cfg.OriginAgentCluster) {
		sink.SetHeader(headers.OAC, headers.ValueOAC)
	}
	return nil
}

func processRP(cfg *Config, sink Sink) error {
	opts := cfg.ReferrerPolicy
	if opts == nil {
		opts = new(ReferrerPolicy)
	}
	if opts.Disabled {
		return nil
	}
	value, err := policies.ReferrerPolicy(opts.Tokens)
	if err != nil {
		return err
	}
	sink.SetHeader(headers.RP, value)
	return nil
}

func processSTS(cfg *Config, sink Sink) error {
	opts := either(cfg.StrictTransportSecurity, cfg.HSTS)
	if opts == nil {
		opts = new(StrictTransportSecurity)
	}
	if opts.Disabled {
		return nil
	}
	value, err := policies.StrictTransportSecurity(
		opts.MaxAgeInSeconds,
		opts.IncludeSubDomains,
		opts.Preload,
	)
	if err != nil {
		return err
	}
	sink.SetHeader(headers.STS, value)
	return nil
}

func processXCTO(cfg *Config, sink Sink) error {
	if enabled(either(cfg.XContentTypeOptions, cfg.NoSniff)) {
		sink.SetHeader(headers.XCTO, headers.ValueXCTO)
	}
	return nil
}

func processXDPC(cfg *Config, sink Sink) error {
	opts := either(cfg.XDNSPrefetchControl, cfg.DNSPrefetchControl)
	if opts == nil {
		opts = new(XDNSPrefetchControl)
	}
	if opts.Disabled {
		return nil
	}
	sink.SetHeader(headers.XDPC, policies.XDNSPrefetchControl(opts.Allow))
	return nil
}

func processXDO(cfg *Config, sink Sink) error {
	if enabled(either(cfg.XDownloadOptions, cfg.IENoOpen)) {
		sink.SetHeader(headers.XDO, headers.ValueXDO)
	}
	return nil
}

func processXFO(cfg *Config, sink Sink) error {
	opts := either(cfg.XFrameOptions, cfg.Frameguard)
	if opts == nil {
		opts = new(XFrameOptions)
	}
	if opts.Disabled {
		return nil
	}
	value, err := policies.XFrameOptions(opts.Action)
	if err != nil {
		return err
	}
	sink.SetHeader(headers.XFO, value)
	return nil
}

func processXPCDP(cfg *Config, sink Sink) error {
	opts := either(cfg.XPermittedCrossDomainPolicies, cfg.PermittedCrossDomainPolicies)
	if opts == nil {
		opts = new(XPermittedCrossDomainPolicies)
	}
	if opts.Disabled {
		return nil
	}
	value, err := policies.XPermittedCrossDomainPolicies(opts.PermittedPolicies)
	if err != nil {
		return err
	}
	sink.SetHeader(headers.XPCDP, value)
	return nil
}

func processXPB(cfg *Config, sink Sink) error {
	if enabled(either(cfg.XPoweredBy, cfg.HidePoweredBy)) {
		sink.RemoveHeader(headers.XPB)
	}
	return nil
}

func processXXP(cfg *Config, sink Sink) error {
	if enabled(either(cfg.XXSSProtection, cfg.XSSFilter)) {
		sink.SetHeader(headers.XXP, headers.ValueXXP)
	}
	return nil
}

// enabled reports whether a fixed-value header that is on by default
// is enabled.
func enabled(t *Toggle) bool {
	return t == nil || !t.Disabled
}
