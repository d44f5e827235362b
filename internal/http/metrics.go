package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recordWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grana_record_writes_total",
		Help: "Record write operations by action and outcome.",
	}, []string{"action", "outcome"})

	dashboardRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "grana_dashboard_renders_total",
		Help: "Dashboard partial renders by cache outcome.",
	}, []string{"cache"})

	rateLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "grana_rate_limit_hits_total",
		Help: "Requests rejected by the per-IP rate limiter.",
	})
)
