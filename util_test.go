package helmet_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/jub0bs/helmet"
)

const (
	headerCSP   = "Content-Security-Policy"
	headerCSPRO = "Content-Security-Policy-Report-Only"
	headerCOEP  = "Cross-Origin-Embedder-Policy"
	headerCOOP  = "Cross-Origin-Opener-Policy"
	headerCORP  = "Cross-Origin-Resource-Policy"
	headerOAC   = "Origin-Agent-Cluster"
	headerRP    = "Referrer-Policy"
	headerSTS   = "Strict-Transport-Security"
	headerXCTO  = "X-Content-Type-Options"
	headerXDPC  = "X-DNS-Prefetch-Control"
	headerXDO   = "X-Download-Options"
	headerXFO   = "X-Frame-Options"
	headerXPCDP = "X-Permitted-Cross-Domain-Policies"
	headerXPB   = "X-Powered-By"
	headerXXP   = "X-XSS-Protection"
)

const defaultCSP = "default-src 'self';" +
	"base-uri 'self';" +
	"font-src 'self' https: data:;" +
	"form-action 'self';" +
	"frame-ancestors 'self';" +
	"img-src 'self' data:;" +
	"object-src 'none';" +
	"script-src 'self';" +
	"script-src-attr 'none';" +
	"style-src 'self' https: 'unsafe-inline';" +
	"upgrade-insecure-requests"

func set(name, value string) helmet.Instruction {
	return helmet.Instruction{Op: helmet.OpSet, Name: name, Value: value}
}

func remove(name string) helmet.Instruction {
	return helmet.Instruction{Op: helmet.OpRemove, Name: name}
}

// defaultInstructions returns the instructions that result from compiling
// the zero Config.
func defaultInstructions() []helmet.Instruction {
	return []helmet.Instruction{
		set(headerCSP, defaultCSP),
		set(headerCOOP, "same-origin"),
		set(headerCORP, "same-origin"),
		set(headerOAC, "?1"),
		set(headerRP, "no-referrer"),
		set(headerSTS, "max-age=31536000; includeSubDomains"),
		set(headerXCTO, "nosniff"),
		set(headerXDPC, "off"),
		set(headerXDO, "noopen"),
		set(headerXFO, "SAMEORIGIN"),
		set(headerXPCDP, "none"),
		remove(headerXPB),
		set(headerXXP, "0"),
	}
}

// defaultsWith returns the default instructions,
// except that the value of the one for header name is replaced by value.
func defaultsWith(name, value string) []helmet.Instruction {
	ins := defaultInstructions()
	for i := range ins {
		if ins[i].Name == name {
			ins[i].Value = value
		}
	}
	return ins
}

// defaultsWithout returns the default instructions,
// except for those that pertain to the specified headers.
func defaultsWithout(names ...string) []helmet.Instruction {
	return slices.DeleteFunc(defaultInstructions(), func(in helmet.Instruction) bool {
		return slices.Contains(names, in.Name)
	})
}

// defaultHeaders returns the response headers that result from applying the
// default instructions to an empty http.Header.
func defaultHeaders() Headers {
	return Headers{
		headerCSP:   defaultCSP,
		headerCOOP:  "same-origin",
		headerCORP:  "same-origin",
		headerOAC:   "?1",
		headerRP:    "no-referrer",
		headerSTS:   "max-age=31536000; includeSubDomains",
		headerXCTO:  "nosniff",
		headerXDPC:  "off",
		headerXDO:   "noopen",
		headerXFO:   "SAMEORIGIN",
		headerXPCDP: "none",
		headerXXP:   "0",
	}
}

func ptr[T any](v T) *T {
	return &v
}

// A spySink records the calls it receives.
type spySink struct {
	calls []helmet.Instruction
}

func (s *spySink) SetHeader(name, value string) {
	s.calls = append(s.calls, set(name, value))
}

func (s *spySink) RemoveHeader(name string) {
	s.calls = append(s.calls, remove(name))
}

// Headers represent a set of HTTP-header name-value pairs
// in which there are no duplicate names.
type Headers = map[string]string

func newRequest(method string) *http.Request {
	const dummyEndpoint = "https://example.com/whatever"
	return httptest.NewRequest(method, dummyEndpoint, nil)
}

type spyHandler struct {
	called      atomic.Bool
	statusCode  int
	respHeaders Headers
	body        string
	handler     http.Handler
}

func newSpyHandler(statusCode int, respHeaders Headers, body string) func() http.Handler {
	f := func() http.Handler {
		h := func(w http.ResponseWriter, r *http.Request) {
			for k, v := range respHeaders {
				w.Header().Set(k, v)
			}
			w.WriteHeader(statusCode)
			if len(body) > 0 {
				io.WriteString(w, body)
			}
		}
		return &spyHandler{
			statusCode:  statusCode,
			respHeaders: respHeaders,
			body:        body,
			handler:     http.HandlerFunc(h),
		}
	}
	return f
}

func (s *spyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.called.Store(true)
	s.handler.ServeHTTP(w, r)
}

// poweredByMiddleware mimics a framework that advertises itself.
var poweredByMiddleware = middleware{
	hdrs: Headers{headerXPB: "SomeFramework/1.0"},
}

type middleware struct {
	hdrs Headers
}

func (m middleware) Wrap(next http.Handler) http.Handler {
	f := func(w http.ResponseWriter, r *http.Request) {
		for k, v := range m.hdrs {
			w.Header().Add(k, v)
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(f)
}

// note: this function mutates got (to ease subsequent assertions)
func assertResponseHeaders(t *testing.T, got http.Header, want Headers) {
	t.Helper()
	for k, v := range want {
		if !deleteHeaderValue(got, k, v) {
			t.Errorf(`missing header value "%s: %s"`, k, v)
		}
		// clean up: remove headers whose values are empty but non-nil
		k = http.CanonicalHeaderKey(k)
		if vs, found := got[k]; found && len(vs) == 0 {
			delete(got, k)
		}
	}
}

func assertNoMoreResponseHeaders(t *testing.T, left http.Header) {
	t.Helper()
	for k, v := range left {
		t.Errorf("unexpected header value(s) %q: %q", k, v)
	}
}

func assertBody(t *testing.T, body io.ReadCloser, want string) {
	t.Helper()
	var buf bytes.Buffer
	_, err := io.Copy(&buf, body)
	if got := buf.String(); err != nil || got != want {
		t.Errorf("got body %q; want body %q", got, want)
	}
}

// deleteHeaderValue reports whether h contains a header named key
// that contains value.
// If that's the case, the key-value pair in question is removed from h.
func deleteHeaderValue(h http.Header, key, value string) bool {
	key = http.CanonicalHeaderKey(key)
	vs, ok := h[key]
	if !ok {
		return false
	}
	i := slices.Index(vs, value)
	if i == -1 {
		return false
	}
	h[key] = slices.Delete(vs, i, i+1)
	return true
}

func newMutatingHandler() http.Handler {
	f := func(w http.ResponseWriter, r *http.Request) {
		resHdrs := w.Header()
		for k, v := range resHdrs {
			if len(v) > 0 {
				v[0] = "mutated!"
			}
			resHdrs[k] = v
		}
	}
	return http.HandlerFunc(f)
}
