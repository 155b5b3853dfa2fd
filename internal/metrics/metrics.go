package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Every collector lives under the geotreasure namespace, e.g.
// geotreasure_http_requests_total and geotreasure_claims_total.

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: SubsystemHTTP,
		Name: "requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{LabelMethod, LabelPath, LabelStatus})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace, Subsystem: SubsystemHTTP,
		Name:    "request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: HTTPLatencyBuckets,
	}, []string{LabelMethod, LabelPath})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace, Subsystem: SubsystemHTTP,
		Name: "requests_in_flight",
		Help: "HTTP requests currently being served.",
	})
)

var (
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: SubsystemEvents,
		Name: "published_total",
		Help: "Events delivered on the bus by type.",
	}, []string{LabelType})

	EventHandlerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace, Subsystem: SubsystemEvents,
		Name: "handler_errors_total",
		Help: "Event handler failures by type.",
	}, []string{LabelType})
)

var (
	ClaimsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "claims_total",
		Help:      "Claim attempts by outcome.",
	}, []string{LabelOutcome})

	ClaimDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "claim_duration_seconds",
		Help:      "Time spent coordinating a claim, locks included.",
		Buckets:   ClaimLatencyBuckets,
	})

	DiscoveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "discoveries_total",
		Help:      "Treasures discovered by rarity.",
	}, []string{LabelRarity})

	RankAdvancesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "rank_advances_total",
		Help:      "Rank advances by the rank reached.",
	}, []string{LabelRank})

	ProfilesRegistered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "profiles_registered_total",
		Help:      "Profiles registered since start.",
	})

	CatalogueSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "catalogue_items",
		Help:      "Treasures in the catalogue.",
	})
)
