package cfgerrors_test

import (
	"strings"
	"testing"

	"github.com/jub0bs/helmet/cfgerrors"
)

func TestPackageNamePrefixInErrorMessages(t *testing.T) {
	errs := []error{
		&cfgerrors.ConfigError{Header: "Content-Security-Policy", Option: "directive name", Value: "img src", Reason: "invalid"},
		&cfgerrors.ConfigError{Header: "Content-Security-Policy", Option: "value", Directive: "script-src", Value: "'self';", Reason: "invalid"},
		&cfgerrors.ConfigError{Header: "Content-Security-Policy", Option: "directive", Value: "default-src", Reason: "duplicate"},
		&cfgerrors.ConfigError{Header: "Content-Security-Policy", Option: "directive", Value: "default-src", Reason: "required"},
		&cfgerrors.ConfigError{Header: "Content-Security-Policy", Option: "directives", Reason: "missing"},
		&cfgerrors.ConfigError{Header: "Referrer-Policy", Option: "policy tokens", Reason: "missing"},
		&cfgerrors.ConfigError{Header: "Strict-Transport-Security", Option: "hsts", Reason: "conflict"},
		&cfgerrors.ConfigError{Reason: "unknown"},
		new(cfgerrors.ConfigError),
	}
	const prefix = "helmet: "
	for _, err := range errs {
		if msg := err.Error(); !strings.HasPrefix(msg, prefix) {
			const tmpl = "error message %q does not start with %q"
			t.Errorf(tmpl, msg, prefix)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		desc string
		err  error
		want string
	}{
		{
			desc: "invalid directive name",
			err: &cfgerrors.ConfigError{
				Header: "Content-Security-Policy",
				Option: "directive name",
				Value:  "img src",
				Reason: "invalid",
			},
			want: `helmet: Content-Security-Policy received an invalid directive name "img src"`,
		}, {
			desc: "invalid directive value",
			err: &cfgerrors.ConfigError{
				Header:    "Content-Security-Policy",
				Option:    "value",
				Directive: "script-src",
				Value:     "'self'; evil",
				Reason:    "invalid",
			},
			want: `helmet: Content-Security-Policy received an invalid value "'self'; evil" for directive "script-src"`,
		}, {
			desc: "duplicate directive",
			err: &cfgerrors.ConfigError{
				Header: "Content-Security-Policy",
				Option: "directive",
				Value:  "default-src",
				Reason: "duplicate",
			},
			want: `helmet: Content-Security-Policy received a duplicate directive "default-src"`,
		}, {
			desc: "required directive",
			err: &cfgerrors.ConfigError{
				Header: "Content-Security-Policy",
				Option: "directive",
				Value:  "default-src",
				Reason: "required",
			},
			want: `helmet: Content-Security-Policy needs a directive "default-src", which cannot be disabled`,
		}, {
			desc: "missing policy tokens",
			err: &cfgerrors.ConfigError{
				Header: "Referrer-Policy",
				Option: "policy tokens",
				Reason: "missing",
			},
			want: `helmet: Referrer-Policy received no policy tokens`,
		}, {
			desc: "conflict",
			err: &cfgerrors.ConfigError{
				Header: "Strict-Transport-Security",
				Option: "hsts",
				Reason: "conflict",
			},
			want: `helmet: Strict-Transport-Security option was specified twice; remove "hsts"`,
		}, {
			desc: "invalid action",
			err: &cfgerrors.ConfigError{
				Header: "X-Frame-Options",
				Option: "action",
				Value:  "invalid",
				Reason: "invalid",
			},
			want: `helmet: X-Frame-Options received an invalid action "invalid"`,
		},
	}
	for _, tc := range cases {
		f := func(t *testing.T) {
			got := tc.err.Error()
			if got != tc.want {
				t.Errorf("got %q; want %q", got, tc.want)
			}
		}
		t.Run(tc.desc, f)
	}
}
