package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_refresh_total",
			Help: "Total number of feed refresh cycles by result",
		},
		[]string{"result"},
	)

	mutationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_mutation_total",
			Help: "Total number of feed mutations by action and result",
		},
		[]string{"action", "result"},
	)

	augmentDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "augment_request_duration_seconds",
			Help:    "Latency of AI augmentation requests",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)
