package scorebook

import (
	"errors"

	"github.com/mauv0809/crease/internal/cricket"
)

// ErrNotFound is returned when no match exists with the requested ID.
var ErrNotFound = errors.New("match not found")

// Delivery is one row of the append-only ball log.
type Delivery struct {
	MatchID       string            `json:"match_id"`
	InningsNumber int               `json:"innings_number"`
	OverNumber    int               `json:"over_number"`
	Seq           int               `json:"seq"`
	Ball          cricket.BallEvent `json:"ball"`
	CreatedAt     int64             `json:"created_at"`
}

// MatchSummary is the listing view of a stored match.
type MatchSummary struct {
	ID               string `json:"id"`
	TeamOne          string `json:"team_one"`
	TeamTwo          string `json:"team_two"`
	BattingTeamIndex int    `json:"batting_team_index"`
	InningsNumber    int    `json:"innings_number"`
	Score            int    `json:"score"`
	Wickets          int    `json:"wickets"`
	CurrentOver      int    `json:"current_over"`
	CurrentBall      int    `json:"current_ball"`
	GameStarted      bool   `json:"game_started"`
	CreatedAt        int64  `json:"created_at"`
	UpdatedAt        int64  `json:"updated_at"`
}
