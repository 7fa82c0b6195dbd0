package http

import (
	"net/http"

	"github.com/mauv0809/crease/internal/config"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/mauv0809/crease/internal/pubsub"
	"github.com/mauv0809/crease/internal/scorer"
)

func NewServer(scorer scorer.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Scorer:         scorer,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /stats", Chain(s.StatsHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches", Chain(s.CreateMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /matches/{id}", Chain(s.DeleteMatchHandler(), paramsMiddleware))

	s.Router.Handle("PUT /matches/{id}/teams", Chain(s.UpdateTeamsHandler(), paramsMiddleware))
	s.Router.Handle("PUT /matches/{id}/teams/{idx}/name", Chain(s.RenameTeamHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/players", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /matches/{id}/players/{pid}", Chain(s.RemovePlayerHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches/{id}/toss/flip", Chain(s.FlipCoinHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/toss/winner", Chain(s.TossWinnerHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/toss", Chain(s.TossHandler(), paramsMiddleware))

	s.Router.Handle("POST /matches/{id}/balls", Chain(s.RecordBallHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/wickets", Chain(s.AdjustWicketsHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/score", Chain(s.AdjustScoreHandler(), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/innings", Chain(s.SwitchInningsHandler(), paramsMiddleware))
	s.Router.Handle("PUT /matches/{id}/batsmen", Chain(s.SetBatsmenHandler(), paramsMiddleware))
	s.Router.Handle("PUT /matches/{id}/bowler", Chain(s.SetBowlerHandler(), paramsMiddleware))

	s.Router.Handle("GET /matches/{id}/scorecard", Chain(s.ScorecardHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/deliveries", Chain(s.DeliveriesHandler(), paramsMiddleware))
	s.Router.Handle("GET /matches/{id}/report", Chain(s.ReportHandler(), paramsMiddleware))

	s.Router.Handle("POST /pubsub/wicket-fallen", Chain(s.WicketFallenHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/innings-switched", Chain(s.InningsSwitchedHandler(), paramsMiddleware))
	s.Router.Handle("POST /slack/command/score", Chain(s.ScoreCommandHandler(), paramsMiddleware, slackVerification(s.Cfg.Slack.SigningSecret)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
