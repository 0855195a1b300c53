package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callbacksReceivedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "callback_gateway",
			Name:      "callbacks_received_total",
			Help:      "Total number of gateway callbacks dispatched.",
		},
		[]string{"kind", "event_type"},
	)

	sinkNotifyFailuresCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "callback_gateway",
			Name:      "sink_notify_failures_total",
			Help:      "Total number of notification sink publish failures.",
		},
		[]string{"kind"},
	)

	dispatchDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "callback_gateway",
			Name:      "dispatch_duration_seconds",
			Help:      "Duration of callback normalization and dispatch.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	ussdRepliesRejectedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "callback_gateway",
			Name:      "ussd_replies_rejected_total",
			Help:      "Total number of business USSD replies rejected by validation.",
		},
		[]string{"command"},
	)
)
