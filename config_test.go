package helmet_test

import (
	"encoding/json"
	"io"
	"reflect"
	"testing"

	"github.com/jub0bs/helmet"
)

var cfgTypes = []reflect.Type{
	reflect.TypeFor[helmet.Config](),
	reflect.TypeFor[helmet.Toggle](),
	reflect.TypeFor[helmet.ContentSecurityPolicy](),
	reflect.TypeFor[helmet.Directive](),
	reflect.TypeFor[helmet.CrossOriginEmbedderPolicy](),
	reflect.TypeFor[helmet.CrossOriginOpenerPolicy](),
	reflect.TypeFor[helmet.CrossOriginResourcePolicy](),
	reflect.TypeFor[helmet.ReferrerPolicy](),
	reflect.TypeFor[helmet.StrictTransportSecurity](),
	reflect.TypeFor[helmet.XDNSPrefetchControl](),
	reflect.TypeFor[helmet.XFrameOptions](),
	reflect.TypeFor[helmet.XPermittedCrossDomainPolicies](),
}

// We want our exported struct types to be incomparable because, otherwise,
// client code could rely on their comparability.
func TestIncomparability(t *testing.T) {
	for _, typ := range cfgTypes {
		f := func(t *testing.T) {
			if typ.Comparable() {
				t.Errorf("type %v is comparable, but should not be", typ)
			}
		}
		t.Run(typ.String(), f)
	}
}

// We don't want client code to rely on unkeyed literals
// of our exported struct types.
func TestImpossibilityOfUnkeyedStructLiterals(t *testing.T) {
	for _, typ := range cfgTypes {
		f := func(t *testing.T) {
			var unexportedFields bool
			for i := range typ.NumField() {
				if !typ.Field(i).IsExported() {
					unexportedFields = true
					break
				}
			}
			if !unexportedFields {
				t.Errorf("type %v has no unexported fields, but should have at least one", typ)
			}
		}
		t.Run(typ.String(), f)
	}
}

// Some clients rely on the ability to marshal configuration to JSON,
// e.g. for logging the configuration that a server runs with.
func TestPossibilityToMarshalConfig(t *testing.T) {
	cfg := helmet.Config{
		ContentSecurityPolicy: &helmet.ContentSecurityPolicy{
			Directives: []helmet.Directive{
				{Name: "scriptSrc", Sources: []string{"'self'"}},
				{Name: "upgradeInsecureRequests", Disabled: true},
			},
		},
		HSTS: &helmet.StrictTransportSecurity{
			MaxAgeInSeconds: ptr(86400),
			Preload:         true,
		},
		XFrameOptions: &helmet.XFrameOptions{Action: "deny"},
		XPoweredBy:    &helmet.Toggle{Disabled: true},
	}
	enc := json.NewEncoder(io.Discard)
	if err := enc.Encode(cfg); err != nil {
		t.Error("helmet.Config cannot be marshaled to JSON, but should be")
	}
}

// Compile must neither retain nor mutate the configuration it's passed.
func TestCompileDoesNotMutateConfig(t *testing.T) {
	sources := []string{"'self'", "https://cdn.example.com"}
	tokens := []string{"origin", "strict-origin"}
	cfg := helmet.Config{
		ContentSecurityPolicy: &helmet.ContentSecurityPolicy{
			Directives: []helmet.Directive{
				{Name: "scriptSrc", Sources: sources},
			},
		},
		ReferrerPolicy: &helmet.ReferrerPolicy{Tokens: tokens},
	}
	before, err := helmet.Compile(&cfg)
	if err != nil {
		t.Fatalf("got error %v; want no error", err)
	}
	if cfg.ContentSecurityPolicy.Directives[0].Name != "scriptSrc" {
		t.Error("directive name was mutated")
	}
	if sources[0] != "'self'" || tokens[0] != "origin" {
		t.Error("input slices were mutated")
	}
	sources[0] = "'none'"
	after, err := helmet.Compile(&cfg)
	if err != nil {
		t.Fatalf("got error %v; want no error", err)
	}
	if before[0].Value == after[0].Value {
		t.Error("recompiling a mutated configuration had no effect")
	}
}
