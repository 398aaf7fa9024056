package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentor_ai_generations_total",
			Help: "AI generations by endpoint kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	throttleRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentor_ai_throttle_rejections_total",
			Help: "Requests rejected by the per-caller rate limiter.",
		},
		[]string{"kind"},
	)

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentor_auth_token_verifications_total",
			Help: "JWT verifications by outcome.",
		},
		[]string{"outcome"},
	)
)
