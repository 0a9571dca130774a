// Package observability exposes Prometheus metrics about a running
// security-headers middleware.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jub0bs/helmet"
)

type Metrics struct {
	reloadsTotal   *prometheus.CounterVec
	responsesTotal prometheus.Counter
	instructions   *prometheus.GaugeVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "helmet_reloads_total", Help: "Total configuration reloads"},
			[]string{"result"},
		),
		responsesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "helmet_responses_total", Help: "Total responses decorated with security headers"},
		),
		instructions: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "helmet_instructions", Help: "Number of header instructions currently applied"},
			[]string{"op"},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.reloadsTotal,
		m.responsesTotal,
		m.instructions,
	)

	return m
}

func (m *Metrics) Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// ObserveReload records the outcome of an attempt to (re)configure the
// middleware; ins are the instructions in effect after that attempt.
func (m *Metrics) ObserveReload(ins []helmet.Instruction, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reloadsTotal.WithLabelValues(result).Inc()
	if err != nil {
		return
	}
	var set, remove int
	for _, in := range ins {
		switch in.Op {
		case helmet.OpSet:
			set++
		case helmet.OpRemove:
			remove++
		}
	}
	m.instructions.WithLabelValues("set").Set(float64(set))
	m.instructions.WithLabelValues("remove").Set(float64(remove))
}

// Wrap counts the responses that h serves.
func (m *Metrics) Wrap(h http.Handler) http.Handler {
	if m == nil {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.responsesTotal.Inc()
		h.ServeHTTP(w, r)
	})
}
