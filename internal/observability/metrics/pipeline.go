package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type PipelineMetrics struct {
	registry *prometheus.Registry

	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	analysesInFlight prometheus.Gauge
	deliveryTotal    *prometheus.CounterVec
}

func NewPipelineMetrics(service string) *PipelineMetrics {
	registry := prometheus.NewRegistry()

	analysesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tda",
			Subsystem: "pipeline",
			Name:      "analyses_total",
			Help:      "Total analysis requests by file kind and final status.",
		},
		[]string{"service", "kind", "status"},
	)
	analysisDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tda",
			Subsystem: "pipeline",
			Name:      "analysis_duration_seconds",
			Help:      "Analysis pipeline duration in seconds by final status.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
		},
		[]string{"service", "status"},
	)
	analysesInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "tda",
			Subsystem: "pipeline",
			Name:      "analyses_in_flight",
			Help:      "Number of analysis pipelines currently running.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	deliveryTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tda",
			Subsystem: "pipeline",
			Name:      "delivery_total",
			Help:      "Delivered results by mode (inline message or file attachment).",
		},
		[]string{"service", "mode"},
	)

	registry.MustRegister(analysesTotal, analysisDuration, analysesInFlight, deliveryTotal)

	return &PipelineMetrics{
		registry:         registry,
		analysesTotal:    analysesTotal,
		analysisDuration: analysisDuration,
		analysesInFlight: analysesInFlight,
		deliveryTotal:    deliveryTotal,
	}
}

func (m *PipelineMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *PipelineMetrics) StartAnalysis() {
	m.analysesInFlight.Inc()
}

func (m *PipelineMetrics) FinishAnalysis(service, kind string, duration time.Duration, err error) {
	m.analysesInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.analysesTotal.WithLabelValues(service, kind, status).Inc()
	m.analysisDuration.WithLabelValues(service, status).Observe(duration.Seconds())
}

func (m *PipelineMetrics) ObserveDelivery(service, mode string) {
	m.deliveryTotal.WithLabelValues(service, mode).Inc()
}
