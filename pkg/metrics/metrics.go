package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP 请求指标
var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// 业务指标
var (
	SessionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sos_sessions_created_total",
		Help: "SOS sessions created by severity",
	}, []string{"severity"})

	SessionsResolved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sos_sessions_resolved_total",
		Help: "SOS sessions resolved",
	})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Best-effort notifications dispatched by kind",
	}, []string{"kind"})

	EvidenceAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evidence_analyzed_total",
		Help: "Evidence items classified by type and resulting label",
	}, []string{"type", "label"})
)

// Handler exposes the default prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RateLimitObserver 基于 Prometheus 的限流观察者
type RateLimitObserver struct {
	allow *prometheus.CounterVec
	deny  *prometheus.CounterVec
}

func NewRateLimitObserver() *RateLimitObserver {
	return &RateLimitObserver{
		allow: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_limit_allow_total",
			Help: "Allowed requests by rate limiter",
		}, []string{"route"}),
		deny: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "rate_limit_deny_total",
			Help: "Denied requests by rate limiter",
		}, []string{"route"}),
	}
}

func (o *RateLimitObserver) OnAllow(route string) { o.allow.WithLabelValues(route).Inc() }
func (o *RateLimitObserver) OnDeny(route string)  { o.deny.WithLabelValues(route).Inc() }
