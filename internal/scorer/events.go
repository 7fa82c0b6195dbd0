package scorer

import "github.com/mauv0809/crease/internal/cricket"

// BallRecorded is published for every delivery.
type BallRecorded struct {
	MatchID       string            `json:"match_id"`
	InningsNumber int               `json:"innings_number"`
	OverNumber    int               `json:"over_number"`
	Seq           int               `json:"seq"`
	Ball          cricket.BallEvent `json:"ball"`
	Description   string            `json:"description"`
	BattingTeam   string            `json:"batting_team"`
	Score         int               `json:"score"`
	Wickets       int               `json:"wickets"`
	Overs         string            `json:"overs"`
	RunRate       string            `json:"run_rate"`
}

// WicketFallen is published when a delivery takes a wicket.
type WicketFallen struct {
	MatchID     string             `json:"match_id"`
	BattingTeam string             `json:"batting_team"`
	BowlingTeam string             `json:"bowling_team"`
	Batsman     string             `json:"batsman,omitempty"`
	Bowler      string             `json:"bowler,omitempty"`
	WicketType  cricket.WicketType `json:"wicket_type,omitempty"`
	Score       int                `json:"score"`
	Wickets     int                `json:"wickets"`
	Overs       string             `json:"overs"`
}

// InningsSwitched is published when an innings ends.
type InningsSwitched struct {
	MatchID         string `json:"match_id"`
	InningsNumber   int    `json:"innings_number"`
	Team            string `json:"team"`
	Score           int    `json:"score"`
	Wickets         int    `json:"wickets"`
	Overs           string `json:"overs"`
	NextBattingTeam string `json:"next_batting_team"`
	Target          int    `json:"target"`
}

// TossCompleted is published when the match starts.
type TossCompleted struct {
	MatchID     string             `json:"match_id"`
	Winner      string             `json:"winner"`
	Choice      cricket.TossChoice `json:"choice"`
	BattingTeam string             `json:"batting_team"`
}

func playerName(state cricket.MatchState, id string) string {
	if p, _, ok := cricket.FindPlayer(state, id); ok {
		return p.Name
	}
	return ""
}
