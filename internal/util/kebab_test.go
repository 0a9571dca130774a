package util_test

import (
	"testing"

	"github.com/jub0bs/helmet/internal/util"
)

func TestKebab(t *testing.T) {
	cases := []struct {
		str  string
		want string
	}{
		{"", ""},
		{"defaultSrc", "default-src"},
		{"default-src", "default-src"},
		{"scriptSrcAttr", "script-src-attr"},
		{"upgradeInsecureRequests", "upgrade-insecure-requests"},
		{"DefaultSrc", "-default-src"},
		{"imgSRC", "img-s-r-c"},
		{"x42Y", "x42-y"},
	}
	for _, tc := range cases {
		got := util.Kebab(tc.str)
		if got != tc.want {
			t.Errorf("%q: got %q; want %q", tc.str, got, tc.want)
		}
	}
}

func FuzzKebabIsIdempotent(f *testing.F) {
	testcases := []string{
		"defaultSrc",
		"frame-ancestors",
		"ABC",
	}
	for _, tc := range testcases {
		f.Add(tc)
	}
	f.Fuzz(func(t *testing.T, orig string) {
		once := util.Kebab(orig)
		twice := util.Kebab(once)
		if once != twice {
			const tmpl = "K(%q): %q; K(K(%q)): %q"
			t.Errorf(tmpl, orig, once, orig, twice)
		}
	})
}
