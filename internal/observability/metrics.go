// Package observability expone las métricas Prometheus del dashboard.
package observability

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rx"

// Metrics registro propio (no el global) con los contadores del dashboard.
type Metrics struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	decisions   *prometheus.CounterVec
	backendErrs *prometheus.CounterVec
}

// NewMetrics crea el registro e inscribe los collectors de runtime.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.registry.MustRegister(collectors.NewGoCollector())
	m.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m.resolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "resolutions_total",
			Help:      "Resoluciones de perfil por resultado",
		},
		[]string{"outcome"},
	)
	m.registry.MustRegister(m.resolutions)

	m.decisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dashboard",
			Name:      "route_decisions_total",
			Help:      "Decisiones de ruteo sobre páginas protegidas",
		},
		[]string{"decision"},
	)
	m.registry.MustRegister(m.decisions)

	m.backendErrs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "errors_total",
			Help:      "Llamadas al backend de identidad sin respuesta 2xx",
		},
		[]string{"operation"},
	)
	m.registry.MustRegister(m.backendErrs)

	return m
}

// ObserveResolution implementa profile.Recorder.
func (m *Metrics) ObserveResolution(outcome string) {
	m.resolutions.WithLabelValues(outcome).Inc()
}

// ObserveDecision cuenta una decisión de navigation.Decide.
func (m *Metrics) ObserveDecision(decision string) {
	m.decisions.WithLabelValues(decision).Inc()
}

// ObserveBackendError cuenta un fallo del backend por operación.
func (m *Metrics) ObserveBackendError(operation string) {
	m.backendErrs.WithLabelValues(operation).Inc()
}

// Registry para tests y para exponer en otro servidor si hiciera falta.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler endpoint /metrics montado en Fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
