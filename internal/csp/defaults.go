package csp

// The default policy, in serialization order.
// Do not mutate; use DefaultDirectives to obtain a copy.
var defaults = Directives{
	{Name: "default-src", Tokens: []string{self}},
	{Name: "base-uri", Tokens: []string{self}},
	{Name: "font-src", Tokens: []string{self, "https:", "data:"}},
	{Name: "form-action", Tokens: []string{self}},
	{Name: "frame-ancestors", Tokens: []string{self}},
	{Name: "img-src", Tokens: []string{self, "data:"}},
	{Name: "object-src", Tokens: []string{none}},
	{Name: "script-src", Tokens: []string{self}},
	{Name: "script-src-attr", Tokens: []string{none}},
	{Name: "style-src", Tokens: []string{self, "https:", "'unsafe-inline'"}},
	{Name: "upgrade-insecure-requests", Tokens: []string{}},
}

const (
	self = "'self'"
	none = "'none'"
)

// DefaultSrc is the name of the fallback directive,
// which a policy cannot disable.
const DefaultSrc = "default-src"

// DefaultDirectives returns a copy of the built-in default policy.
// Callers are free to mutate the result.
func DefaultDirectives() Directives {
	return defaults.clone()
}

// zeroArgDirectives lists the directives that are meaningful
// without any value.
var zeroArgDirectives = [...]string{
	"block-all-mixed-content",
	"sandbox",
	"upgrade-insecure-requests",
}

func isZeroArg(name string) bool {
	for _, d := range zeroArgDirectives {
		if d == name {
			return true
		}
	}
	return false
}
