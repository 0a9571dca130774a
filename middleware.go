package helmet

import (
	"net/http"
	"slices"
	"sync/atomic"
)

// A Middleware is a security-headers middleware.
// Call its [*Middleware.Wrap] method to apply it to a [http.Handler].
//
// The zero value is ready to use but is a mere "passthrough" middleware,
// i.e. a middleware that simply delegates to the handler(s) it wraps.
// To obtain a proper middleware, you should call [NewMiddleware]
// and pass it a valid [Config].
//
// A Middleware must not be copied after first use.
//
// Middleware are safe for concurrent use by multiple goroutines.
// Therefore, you are free to expose their [*Middleware.Reconfigure] method
// so you can exercise it without having to restart your server;
// however, if you do expose that method, you should only do so on some
// internal or authorized endpoints, for security reasons.
type Middleware struct {
	ins atomic.Pointer[[]Instruction]
}

// NewMiddleware creates a middleware that sets (and removes) security headers
// in accordance with cfg.
// If cfg is invalid, it returns a nil [*Middleware] and some non-nil error.
// Otherwise, it returns a pointer to a [Middleware] and a nil error.
//
// Mutating the fields of cfg after NewMiddleware has returned a functioning
// middleware does not alter the latter's behavior.
// However, you can reconfigure a [Middleware] via its
// [*Middleware.Reconfigure] method.
//
// If you need to programmatically handle the resulting error,
// rely on package [github.com/jub0bs/helmet/cfgerrors].
func NewMiddleware(cfg Config) (*Middleware, error) {
	ins, err := Compile(&cfg)
	if err != nil {
		return nil, err
	}
	var m Middleware
	m.ins.Store(&ins)
	return &m, nil
}

// Reconfigure reconfigures m in accordance with cfg.
// If cfg is nil, it turns m into a passthrough middleware.
// If *cfg is invalid, it leaves m unchanged and returns some non-nil error.
// Otherwise, it successfully reconfigures m and returns a nil error.
//
// Note that
//
//	mw := new(helmet.Middleware)
//	err := mw.Reconfigure(&cfg)
//
// is functionally equivalent to
//
//	mw, err := helmet.NewMiddleware(cfg)
//
// You can safely reconfigure a middleware
// even as it's concurrently processing requests.
//
// If you need to programmatically handle the resulting error,
// rely on package [github.com/jub0bs/helmet/cfgerrors].
func (m *Middleware) Reconfigure(cfg *Config) error {
	if cfg == nil {
		m.ins.Store(nil)
		return nil
	}
	ins, err := Compile(cfg)
	if err != nil {
		return err
	}
	m.ins.Store(&ins)
	return nil
}

// Wrap applies the middleware to the specified handler.
// The security headers are set (and removed) before h gets called,
// so that h can still override them if it needs to.
func (m *Middleware) Wrap(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ins := m.ins.Load()
		if ins == nil { // passthrough middleware
			h.ServeHTTP(w, r)
			return
		}
		// Header values are not shared across responses: http.Header.Set
		// allocates a fresh slice on each call, which prevents the wrapped
		// handler from mutating our precomputed state.
		// http.Header.Set also canonicalizes the header name.
		resHdrs := w.Header()
		for _, in := range *ins {
			switch in.Op {
			case OpSet:
				resHdrs.Set(in.Name, in.Value)
			case OpRemove:
				resHdrs.Del(in.Name)
			}
		}
		h.ServeHTTP(w, r)
	})
}

// Instructions returns a copy of the instructions that m applies to every
// response; if m is a passthrough middleware, it simply returns nil.
func (m *Middleware) Instructions() []Instruction {
	ins := m.ins.Load()
	if ins == nil {
		return nil
	}
	return slices.Clone(*ins)
}
