package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesCreated      prometheus.Counter
	BallsRecorded       prometheus.Counter
	Wickets             prometheus.Counter
	TransitionsRejected *prometheus.CounterVec
	TransitionDuration  *prometheus.HistogramVec
	EventsPublished     *prometheus.CounterVec
	SlackNotifSent      prometheus.Counter
	SlackNotifFailed    prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
