package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_matches_created_total",
			Help: "The total number of matches created.",
		}),
		BallsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_balls_recorded_total",
			Help: "The total number of deliveries recorded.",
		}),
		Wickets: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_wickets_total",
			Help: "The total number of wickets recorded from deliveries.",
		}),
		TransitionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_transitions_rejected_total",
			Help: "The total number of match transitions rejected by validation.",
		}, []string{"operation"}),
		TransitionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "crease_transition_duration_seconds",
			Help:    "The duration of a match transition including persistence.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "crease_events_published_total",
			Help: "The total number of match events published.",
		}, []string{"topic"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "crease_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "crease_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesCreated,
		s.BallsRecorded,
		s.Wickets,
		s.TransitionsRejected,
		s.TransitionDuration,
		s.EventsPublished,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesCreated() {
	s.MatchesCreated.Inc()
}

func (s *Service) IncBallsRecorded() {
	s.BallsRecorded.Inc()
}

func (s *Service) IncWickets() {
	s.Wickets.Inc()
}

func (s *Service) IncTransitionsRejected(operation string) {
	s.TransitionsRejected.WithLabelValues(operation).Inc()
}

func (s *Service) ObserveTransitionDuration(operation string, duration float64) {
	s.TransitionDuration.WithLabelValues(operation).Observe(duration)
}

func (s *Service) IncEventsPublished(topic string) {
	s.EventsPublished.WithLabelValues(topic).Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
