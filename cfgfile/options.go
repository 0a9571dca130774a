package cfgfile

import (
	"errors"
	"fmt"
	"math"

	"github.com/jub0bs/helmet"
	"github.com/jub0bs/helmet/cfgerrors"
)

func toConfig(doc any) (*helmet.Config, error) {
	var cfg helmet.Config
	if doc == nil {
		return &cfg, nil
	}
	obj, ok := doc.(object)
	if !ok {
		return nil, errors.New("parse config: top-level value is not a mapping")
	}
	for _, m := range obj {
		var err error
		switch m.key {
		case "contentSecurityPolicy":
			cfg.ContentSecurityPolicy, err = decodeCSP(m.value)
		case "crossOriginEmbedderPolicy":
			cfg.CrossOriginEmbedderPolicy, err = decodeCOEP(m.value)
		case "crossOriginOpenerPolicy":
			cfg.CrossOriginOpenerPolicy, err = decodeCOOP(m.value)
		case "crossOriginResourcePolicy":
			cfg.CrossOriginResourcePolicy, err = decodeCORP(m.value)
		case "originAgentCluster":
			cfg.OriginAgentCluster, err = decodeToggle(helmet.HeaderOriginAgentCluster, m)
		case "referrerPolicy":
			cfg.ReferrerPolicy, err = decodeReferrerPolicy(m.value)
		case "strictTransportSecurity":
			cfg.StrictTransportSecurity, err = decodeSTS(m)
		case "hsts":
			cfg.HSTS, err = decodeSTS(m)
		case "xContentTypeOptions":
			cfg.XContentTypeOptions, err = decodeToggle(helmet.HeaderXContentTypeOptions, m)
		case "noSniff":
			cfg.NoSniff, err = decodeToggle(helmet.HeaderXContentTypeOptions, m)
		case "xDnsPrefetchControl":
			cfg.XDNSPrefetchControl, err = decodeXDPC(m)
		case "dnsPrefetchControl":
			cfg.DNSPrefetchControl, err = decodeXDPC(m)
		case "xDownloadOptions":
			cfg.XDownloadOptions, err = decodeToggle(helmet.HeaderXDownloadOptions, m)
		case "ieNoOpen":
			cfg.IENoOpen, err = decodeToggle(helmet.HeaderXDownloadOptions, m)
		case "xFrameOptions":
			cfg.XFrameOptions, err = decodeXFO(m)
		case "frameguard":
			cfg.Frameguard, err = decodeXFO(m)
		case "xPermittedCrossDomainPolicies":
			cfg.XPermittedCrossDomainPolicies, err = decodeXPCDP(m)
		case "permittedCrossDomainPolicies":
			cfg.PermittedCrossDomainPolicies, err = decodeXPCDP(m)
		case "xPoweredBy":
			cfg.XPoweredBy, err = decodeToggle(helmet.HeaderXPoweredBy, m)
		case "hidePoweredBy":
			cfg.HidePoweredBy, err = decodeToggle(helmet.HeaderXPoweredBy, m)
		case "xXssProtection":
			cfg.XXSSProtection, err = decodeToggle(helmet.HeaderXXSSProtection, m)
		case "xssFilter":
			cfg.XSSFilter, err = decodeToggle(helmet.HeaderXXSSProtection, m)
		}
		if err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// classify interprets the value of a top-level option that is present
// in the document. If v is nil (null), the option is enabled without any
// settings. If v is a boolean, the option is enabled or disabled
// accordingly, without any settings.
// If v is an object, the option is enabled and obj holds its settings.
func classify(header, option string, v any) (present, enabled bool, obj object, err error) {
	switch v := v.(type) {
	case nil:
		return true, true, nil, nil
	case bool:
		return true, v, nil, nil
	case object:
		return true, true, v, nil
	default:
		return false, false, nil, invalid(header, option, v)
	}
}

func decodeToggle(header string, m member) (*helmet.Toggle, error) {
	present, enabled, _, err := classify(header, m.key, m.value)
	if err != nil || !present {
		return nil, err
	}
	return &helmet.Toggle{Disabled: !enabled}, nil
}

func decodeCSP(v any) (*helmet.ContentSecurityPolicy, error) {
	const header = helmet.HeaderContentSecurityPolicy
	present, enabled, obj, err := classify(header, "contentSecurityPolicy", v)
	if err != nil || !present {
		return nil, err
	}
	opts := helmet.ContentSecurityPolicy{Disabled: !enabled}
	useDefaults, found, err := obj.bool(header, "useDefaults")
	if err != nil {
		return nil, err
	}
	opts.NoDefaults = found && !useDefaults
	if opts.ReportOnly, _, err = obj.bool(header, "reportOnly"); err != nil {
		return nil, err
	}
	raw, _ := obj.lookup("directives")
	if opts.Directives, err = decodeDirectives(raw); err != nil {
		return nil, err
	}
	return &opts, nil
}

func decodeDirectives(v any) ([]helmet.Directive, error) {
	const header = helmet.HeaderContentSecurityPolicy
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(object)
	if !ok {
		return nil, invalid(header, "directives", v)
	}
	ds := make([]helmet.Directive, 0, len(obj))
	for _, m := range obj {
		d := helmet.Directive{Name: m.key}
		switch val := m.value.(type) {
		case nil:
			d.Disabled = true
		case bool:
			if val {
				return nil, invalidSource(m.key, val)
			}
			d.Disabled = true
		case string:
			d.Sources = []string{val}
		case []any:
			d.Sources = make([]string, 0, len(val))
			for _, e := range val {
				s, ok := e.(string)
				if !ok {
					return nil, invalidSource(m.key, e)
				}
				d.Sources = append(d.Sources, s)
			}
		default:
			return nil, invalidSource(m.key, val)
		}
		ds = append(ds, d)
	}
	return ds, nil
}

func decodeCOEP(v any) (*helmet.CrossOriginEmbedderPolicy, error) {
	const header = helmet.HeaderCrossOriginEmbedderPolicy
	present, enabled, obj, err := classify(header, "crossOriginEmbedderPolicy", v)
	if err != nil || !present {
		return nil, err
	}
	opts := helmet.CrossOriginEmbedderPolicy{Disabled: !enabled}
	if opts.Policy, err = obj.string(header, "policy"); err != nil {
		return nil, err
	}
	return &opts, nil
}

func decodeCOOP(v any) (*helmet.CrossOriginOpenerPolicy, error) {
	const header = helmet.HeaderCrossOriginOpenerPolicy
	present, enabled, obj, err := classify(header, "crossOriginOpenerPolicy", v)
	if err != nil || !present {
		return nil, err
	}
	opts := helmet.CrossOriginOpenerPolicy{Disabled: !enabled}
	if opts.Policy, err = obj.string(header, "policy"); err != nil {
		return nil, err
	}
	return &opts, nil
}

func decodeCORP(v any) (*helmet.CrossOriginResourcePolicy, error) {
	const header = helmet.HeaderCrossOriginResourcePolicy
	present, enabled, obj, err := classify(header, "crossOriginResourcePolicy", v)
	if err != nil || !present {
		return nil, err
	}
	opts := helmet.CrossOriginResourcePolicy{Disabled: !enabled}
	if opts.Policy, err = obj.string(header, "policy"); err != nil {
		return nil, err
	}
	return &opts, nil
}

func decodeReferrerPolicy(v any) (*helmet.ReferrerPolicy, error) {
	const header = helmet.HeaderReferrerPolicy
	present, enabled, obj, err := classify(header, "referrerPolicy", v)
	if err != nil || !present {
		return nil, err
	}
	opts := helmet.ReferrerPolicy{Disabled: !enabled}
	switch policy, _ := obj.lookup("policy"); policy := policy.(type) {
	case nil:
	case string:
		opts.Tokens = []string{policy}
	case []any:
		opts.Tokens = make([]string, 0, len(policy))
		for _, e := range policy {
			tok, ok := e.(string)
			if !ok {
				return nil, invalid(header, "policy token", e)
			}
			opts.Tokens = append(opts.Tokens, tok)
		}
	default:
		return nil, invalid(header, "policy", policy)
	}
	return &opts, nil
}

func decodeSTS(m member) (*helmet.StrictTransportSecurity, error) {
	const header = helmet.HeaderStrictTransportSecurity
	present, enabled, obj, err := classify(header, m.key, m.value)
	if err != nil || !present {
		return nil, err
	}
	opts := helmet.StrictTransportSecurity{Disabled: !enabled}
	if opts.MaxAgeInSeconds, err = obj.int(header, "maxAge", "max-age"); err != nil {
		return nil, err
	}
	include, found, err := obj.bool(header, "includeSubDomains")
	if err != nil {
		return nil, err
	}
	if found {
		opts.IncludeSubDomains = &include
	}
	if opts.Preload, _, err = obj.bool(header, "preload"); err != nil {
		return nil, err
	}
	return &opts, nil
}

func decodeXDPC(m member) (*helmet.XDNSPrefetchControl, error) {
	const header = helmet.HeaderXDNSPrefetchControl
	present, enabled, obj, err := classify(header, m.key, m.value)
	if err != nil || !present {
		return nil, err
	}
	opts := helmet.XDNSPrefetchControl{Disabled: !enabled}
	if opts.Allow, _, err = obj.bool(header, "allow"); err != nil {
		return nil, err
	}
	return &opts, nil
}

func decodeXFO(m member) (*helmet.XFrameOptions, error) {
	const header = helmet.HeaderXFrameOptions
	present, enabled, obj, err := classify(header, m.key, m.value)
	if err != nil || !present {
		return nil, err
	}
	opts := helmet.XFrameOptions{Disabled: !enabled}
	if opts.Action, err = obj.string(header, "action"); err != nil {
		return nil, err
	}
	return &opts, nil
}

func decodeXPCDP(m member) (*helmet.XPermittedCrossDomainPolicies, error) {
	const header = helmet.HeaderXPermittedCrossDomainPolicies
	present, enabled, obj, err := classify(header, m.key, m.value)
	if err != nil || !present {
		return nil, err
	}
	opts := helmet.XPermittedCrossDomainPolicies{Disabled: !enabled}
	if opts.PermittedPolicies, err = obj.string(header, "permittedPolicies"); err != nil {
		return nil, err
	}
	return &opts, nil
}

// string returns the value of key, or the empty string if key is absent
// or null. A value that is explicitly the empty string is invalid.
func (o object) string(header, key string) (string, error) {
	v, _ := o.lookup(key)
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		if v == "" {
			return "", invalid(header, key, v)
		}
		return v, nil
	default:
		return "", invalid(header, key, v)
	}
}

func (o object) bool(header, key string) (value, found bool, err error) {
	v, _ := o.lookup(key)
	switch v := v.(type) {
	case nil:
		return false, false, nil
	case bool:
		return v, true, nil
	default:
		return false, false, invalid(header, key, v)
	}
}

func (o object) int(header, key, option string) (*int, error) {
	v, _ := o.lookup(key)
	var n int
	switch v := v.(type) {
	case nil:
		return nil, nil
	case int:
		n = v
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return nil, invalid(header, option, v)
		}
		n = int(v)
	case uint64:
		if v > math.MaxInt {
			return nil, invalid(header, option, v)
		}
		n = int(v)
	case float64:
		if v != math.Trunc(v) || v < math.MinInt || v >= math.MaxInt {
			return nil, invalid(header, option, v)
		}
		n = int(v)
	default:
		return nil, invalid(header, option, v)
	}
	return &n, nil
}

func invalid(header, option string, v any) error {
	return &cfgerrors.ConfigError{
		Header: header,
		Option: option,
		Value:  describe(v),
		Reason: "invalid",
	}
}

func invalidSource(directive string, v any) error {
	return &cfgerrors.ConfigError{
		Header:    helmet.HeaderContentSecurityPolicy,
		Option:    "value",
		Directive: directive,
		Value:     describe(v),
		Reason:    "invalid",
	}
}

func describe(v any) string {
	switch v.(type) {
	case object:
		return "(mapping)"
	case []any:
		return "(sequence)"
	default:
		return fmt.Sprint(v)
	}
}
