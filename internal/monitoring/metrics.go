package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics はお問い合わせパイプラインの監視指標。
type Metrics struct {
	// HTTP 指標
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// 送信パイプライン指標
	SubmissionsTotal *prometheus.CounterVec // outcome: delivered / rejected / delivery_failed / compose_failed
	MailSendsTotal   *prometheus.CounterVec // copy: operator / acknowledgment, result: ok / error
	MailSendDuration *prometheus.HistogramVec

	// エラー指標
	PanicsTotal prometheus.Counter
}

// NewMetrics は監視指標を登録して返す。
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "site_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "site_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		SubmissionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "site_contact_submissions_total",
				Help: "Contact form submissions by outcome",
			},
			[]string{"outcome"},
		),
		MailSendsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "site_mail_sends_total",
				Help: "Outbound mail relay attempts by copy and result",
			},
			[]string{"copy", "result"},
		),
		MailSendDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "site_mail_send_duration_seconds",
				Help:    "Outbound mail relay send duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"copy"},
		),
		PanicsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "site_panics_total",
				Help: "Total number of recovered panics",
			},
		),
	}
}

// RecordHTTPRequest は HTTP リクエスト 1 件分の指標を記録する。
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSubmission は送信試行の結果を記録する。
func (m *Metrics) RecordSubmission(outcome string) {
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordMailSend はリレー送信 1 回分の結果と所要時間を記録する。
func (m *Metrics) RecordMailSend(copy string, ok bool, duration time.Duration) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.MailSendsTotal.WithLabelValues(copy, result).Inc()
	m.MailSendDuration.WithLabelValues(copy).Observe(duration.Seconds())
}

// RecordPanic は回復した panic を記録する。
func (m *Metrics) RecordPanic() {
	m.PanicsTotal.Inc()
}

// Handler は /metrics 用の HTTP ハンドラを返す。
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
