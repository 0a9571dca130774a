// Package csp normalizes and serializes [Content-Security-Policy] directives.
//
// [Content-Security-Policy]: https://www.w3.org/TR/CSP3/
package csp

import (
	"slices"
	"strings"

	"github.com/jub0bs/helmet/cfgerrors"
	"github.com/jub0bs/helmet/internal/headers"
	"github.com/jub0bs/helmet/internal/util"
)

// An Entry is a directive as specified by users,
// prior to normalization.
type Entry struct {
	Name     string   // camelCase or kebab-case
	Tokens   []string // ignored if Disabled
	Disabled bool     // explicitly removes a default directive
}

// A Directive is a normalized directive.
// An empty Tokens denotes a directive that takes no value.
type Directive struct {
	Name   string // kebab-case
	Tokens []string
}

// Directives is an ordered list of normalized directives
// whose names are unique.
type Directives []Directive

func (ds Directives) clone() Directives {
	res := make(Directives, len(ds))
	for i, d := range ds {
		res[i] = Directive{
			Name:   d.Name,
			Tokens: slices.Clone(d.Tokens),
		}
	}
	return res
}

func (ds Directives) index(name string) int {
	for i := range ds {
		if ds[i].Name == name {
			return i
		}
	}
	return -1
}

var (
	nameChars = util.MakeASCIISet("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-")
	// Semicolons separate directives and commas separate policies;
	// see https://www.w3.org/TR/CSP3/#parse-serialized-policy-list.
	separators = util.MakeASCIISet(headers.DirectiveSep + headers.ValueSep)
)

// Normalize validates entries and returns the resulting directives.
// Entries are processed in order; if useDefaults is true, the default
// directives that entries neither set nor disable are then appended,
// in their built-in order.
// A nil entries is equivalent to the default directives.
func Normalize(entries []Entry, useDefaults bool) (Directives, error) {
	if entries == nil {
		entries = defaultEntries()
	}
	var (
		res      Directives
		seen     util.Set
		disabled util.Set
	)
	for _, e := range entries {
		if !nameChars.ContainsAll(e.Name) {
			err := &cfgerrors.ConfigError{
				Header: headers.CSP,
				Option: "directive name",
				Value:  e.Name,
				Reason: "invalid",
			}
			return nil, err
		}
		name := util.Kebab(e.Name)
		if !seen.Add(name) {
			err := &cfgerrors.ConfigError{
				Header: headers.CSP,
				Option: "directive",
				Value:  name,
				Reason: "duplicate",
			}
			return nil, err
		}
		if e.Disabled {
			if name == DefaultSrc {
				err := &cfgerrors.ConfigError{
					Header: headers.CSP,
					Option: "directive",
					Value:  name,
					Reason: "required",
				}
				return nil, err
			}
			disabled.Add(name)
			continue
		}
		if len(e.Tokens) == 0 && !isZeroArg(name) {
			return nil, invalidValueErr(name, "")
		}
		for _, tok := range e.Tokens {
			if !isValidToken(tok) {
				return nil, invalidValueErr(name, tok)
			}
		}
		d := Directive{
			Name:   name,
			Tokens: slices.Clone(e.Tokens),
		}
		res = append(res, d)
	}
	if useDefaults {
		for _, d := range defaults {
			if res.index(d.Name) >= 0 || disabled.Contains(d.Name) {
				continue
			}
			d.Tokens = slices.Clone(d.Tokens)
			res = append(res, d)
		}
	}
	if len(res) == 0 {
		err := &cfgerrors.ConfigError{
			Header: headers.CSP,
			Option: "directives",
			Reason: "missing",
		}
		return nil, err
	}
	return res, nil
}

func defaultEntries() []Entry {
	ds := DefaultDirectives()
	entries := make([]Entry, len(ds))
	for i, d := range ds {
		entries[i] = Entry{
			Name:   d.Name,
			Tokens: d.Tokens,
		}
	}
	return entries
}

func isValidToken(tok string) bool {
	return tok != "" &&
		!separators.ContainsAny(tok) &&
		headers.IsValidValue(tok)
}

func invalidValueErr(directive, value string) error {
	return &cfgerrors.ConfigError{
		Header:    headers.CSP,
		Option:    "value",
		Directive: directive,
		Value:     value,
		Reason:    "invalid",
	}
}

// Serialize serializes ds into a header value.
// Directives are separated by semicolons, without any whitespace.
func (ds Directives) Serialize() (string, error) {
	var b strings.Builder
	for i, d := range ds {
		if i > 0 {
			b.WriteString(headers.DirectiveSep)
		}
		b.WriteString(d.Name)
		if len(d.Tokens) == 0 {
			continue
		}
		value := strings.Join(d.Tokens, headers.SourceSep)
		// Tokens are validated individually by Normalize, but ds may have
		// been built by other means.
		if separators.ContainsAny(value) || !headers.IsValidValue(value) {
			return "", invalidValueErr(d.Name, value)
		}
		b.WriteString(headers.SourceSep)
		b.WriteString(value)
	}
	return b.String(), nil
}
