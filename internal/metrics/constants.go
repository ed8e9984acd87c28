package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Simulation metric names
const (
	MetricNamePopulation         = "sim_population"
	MetricNameBirths             = "sim_births_total"
	MetricNameDeaths             = "sim_deaths_total"
	MetricNameBuildingsCompleted = "sim_buildings_completed_total"
	MetricNameSkillLevelUps      = "sim_skill_levelups_total"
	MetricNameDaysAdvanced       = "sim_days_advanced_total"
	MetricNameTickDuration       = "sim_tick_duration_seconds"
	MetricNameSnapshotsSaved     = "sim_snapshots_saved_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Simulation metric help text
const (
	HelpTextPopulation         = "Current settlement population"
	HelpTextBirths             = "Total villagers born"
	HelpTextDeaths             = "Total villagers dead"
	HelpTextBuildingsCompleted = "Total buildings completed"
	HelpTextSkillLevelUps      = "Total skill tier crossings"
	HelpTextDaysAdvanced       = "Total simulated days advanced"
	HelpTextTickDuration       = "Wall-clock duration of one simulated day in seconds"
	HelpTextSnapshotsSaved     = "Total world snapshots persisted"
)

// Common label names used across metrics
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelSkill    = "skill"
	LabelBuilding = "building"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// TickDurationBuckets covers the expected tick cost, from microbenchmark
// territory up to a pathological second.
var TickDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
