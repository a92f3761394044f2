// Package metrics chứa các Prometheus collector của report engine
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome của một lần xử lý báo cáo
const (
	OutcomeSuccess = "success"
)

// ReportMetrics ghi số lượng, thời gian và số dòng của các lần chạy báo cáo.
// Giá trị nil hợp lệ và không ghi gì.
type ReportMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rows     *prometheus.HistogramVec
}

// NewReportMetrics đăng ký collector lên reg; reg nil trả về metrics rỗng
func NewReportMetrics(reg prometheus.Registerer) *ReportMetrics {
	if reg == nil {
		return &ReportMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "apre",
		Name:      "report_requests_total",
		Help:      "Report requests by kind and outcome (success or error kind).",
	}, []string{"kind", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "apre",
		Name:      "report_duration_seconds",
		Help:      "End-to-end report handling time in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})
	rows := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "apre",
		Name:      "report_rows",
		Help:      "Number of rows returned by successful reports.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
	}, []string{"kind"})
	reg.MustRegister(requests, duration, rows)
	return &ReportMetrics{requests: requests, duration: duration, rows: rows}
}

// Observe ghi kết quả một lần xử lý báo cáo
func (m *ReportMetrics) Observe(kind, outcome string, elapsed time.Duration, rows int) {
	if m == nil || m.requests == nil {
		return
	}
	kind = normalizeLabel(kind)
	m.requests.WithLabelValues(kind, normalizeLabel(outcome)).Inc()
	m.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess {
		m.rows.WithLabelValues(kind).Observe(float64(rows))
	}
}

// NewRegistry tạo registry có sẵn collector của Go runtime và process
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler trả về http.Handler cho /metrics
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
