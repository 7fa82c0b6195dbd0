package http

import (
	"net/http"

	"github.com/mauv0809/crease/internal/config"
	"github.com/mauv0809/crease/internal/cricket"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/notifier"
	"github.com/mauv0809/crease/internal/pubsub"
	"github.com/mauv0809/crease/internal/scorer"
)

type Server struct {
	Scorer         scorer.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// teamsRequest is the body of PUT /matches/{id}/teams.
type teamsRequest struct {
	Teams [2]teamRequest `json:"teams"`
}

type teamRequest struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Players []playerRequest `json:"players"`
}

type playerRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BattingOrder *int   `json:"batting_order,omitempty"`
}

type addPlayerRequest struct {
	Team int    `json:"team"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type renameTeamRequest struct {
	Name string `json:"name"`
}

type tossWinnerRequest struct {
	Winner int `json:"winner"`
}

// tossRequest completes the toss in one step when Winner is set, otherwise it
// confirms the choice for the winner already drawn.
type tossRequest struct {
	Winner *int   `json:"winner,omitempty"`
	Choice string `json:"choice"`
}

type deltaRequest struct {
	Delta int `json:"delta"`
}

type batsmenRequest struct {
	Striker    string `json:"striker"`
	NonStriker string `json:"non_striker"`
}

type bowlerRequest struct {
	Bowler string `json:"bowler"`
}

type addPlayerResponse struct {
	Player cricket.Player     `json:"player"`
	Match  cricket.MatchState `json:"match"`
}

// pushRequest is the envelope of a Pub/Sub push subscription.
type pushRequest struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data      string `json:"data"` // base64-encoded message payload
		MessageID string `json:"messageId"`
	} `json:"message"`
}
