package helmet_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jub0bs/helmet"
)

func BenchmarkMiddleware(b *testing.B) {
	cases := []struct {
		desc string
		cfg  *helmet.Config
	}{
		{
			desc: "passthrough",
		}, {
			desc: "defaults",
			cfg:  &helmet.Config{},
		}, {
			desc: "custom CSP",
			cfg: &helmet.Config{
				ContentSecurityPolicy: &helmet.ContentSecurityPolicy{
					Directives: []helmet.Directive{
						{Name: "scriptSrc", Sources: []string{"'self'", "https://cdn.example.com"}},
						{Name: "connectSrc", Sources: []string{"'self'", "wss://example.com"}},
					},
				},
				CrossOriginEmbedderPolicy: &helmet.CrossOriginEmbedderPolicy{},
			},
		},
	}

	for _, bc := range cases {
		if bc.cfg == nil {
			continue
		}
		// benchmark initialization
		f := func(b *testing.B) {
			b.ReportAllocs()
			for range b.N {
				if _, err := helmet.NewMiddleware(*bc.cfg); err != nil {
					b.Fatal(err)
				}
			}
		}
		b.Run("initialization "+bc.desc, f)
	}

	// benchmark execution
	for _, bc := range cases {
		var handler http.Handler = dummyHandler
		if bc.cfg != nil {
			mw, err := helmet.NewMiddleware(*bc.cfg)
			if err != nil {
				b.Fatal(err)
			}
			handler = mw.Wrap(handler)
		}
		f := func(b *testing.B) {
			req := newRequest(http.MethodGet)
			b.ReportAllocs()
			b.ResetTimer()
			// We run benchmarks in parallel because typical workloads
			// for HTTP handlers are concurrent.
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					rec := httptest.NewRecorder()
					handler.ServeHTTP(rec, req)
				}
			})
		}
		b.Run("exec           "+bc.desc, f)
	}
}

var dummyHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	io.WriteString(w, "Hello, World!")
})
