package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Simulation Metrics
var (
	Population = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePopulation,
			Help: HelpTextPopulation,
		},
	)

	Births = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBirths,
			Help: HelpTextBirths,
		},
	)

	Deaths = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDeaths,
			Help: HelpTextDeaths,
		},
	)

	BuildingsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBuildingsCompleted,
			Help: HelpTextBuildingsCompleted,
		},
		[]string{LabelBuilding},
	)

	SkillLevelUps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSkillLevelUps,
			Help: HelpTextSkillLevelUps,
		},
		[]string{LabelSkill},
	)

	DaysAdvanced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameDaysAdvanced,
			Help: HelpTextDaysAdvanced,
		},
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameTickDuration,
			Help:    HelpTextTickDuration,
			Buckets: TickDurationBuckets,
		},
	)

	SnapshotsSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotsSaved,
			Help: HelpTextSnapshotsSaved,
		},
	)
)
