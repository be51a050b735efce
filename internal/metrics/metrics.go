package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipseek_searches_total",
		Help: "Total number of searches issued to the backend",
	}, []string{"status"})

	FallbackServedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipseek_fallback_served_total",
		Help: "Times the bundled fallback result set was displayed",
	})

	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clipseek_submissions_total",
		Help: "Total number of contest submissions attempted",
	}, []string{"outcome"})
)
