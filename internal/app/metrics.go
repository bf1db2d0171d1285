package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badgedesk_dispatch_total",
			Help: "Incoming photo events and manual dispatches by outcome.",
		},
		[]string{"outcome"},
	)
	feedEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "badgedesk_feed_events_total",
			Help: "Photo-created events received from the change feed.",
		},
	)
	signedURLFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "badgedesk_signed_url_fallback_total",
			Help: "Signed URL resolutions that fell back to the raw image reference.",
		},
	)
)
