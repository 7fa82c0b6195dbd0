package cricket

import "slices"

// Role is a player's speciality within the squad.
type Role string

const (
	RoleBatsman      Role = "Batsman"
	RoleBowler       Role = "Bowler"
	RoleAllRounder   Role = "All-rounder"
	RoleWicketKeeper Role = "Wicket-keeper"
)

// WicketType is the mode of dismissal recorded with a wicket.
type WicketType string

const (
	WicketBowled  WicketType = "Bowled"
	WicketCaught  WicketType = "Caught"
	WicketLBW     WicketType = "LBW"
	WicketRunOut  WicketType = "Run Out"
	WicketStumped WicketType = "Stumped"
	WicketOther   WicketType = "Other"
)

// ExtraType is the kind of extra awarded on a delivery.
type ExtraType string

const (
	ExtraWide   ExtraType = "Wide"
	ExtraNoBall ExtraType = "No Ball"
	ExtraBye    ExtraType = "Bye"
	ExtraLegBye ExtraType = "Leg Bye"
)

// TossChoice is what the toss winner elects to do first.
type TossChoice string

const (
	ChoiceBat  TossChoice = "bat"
	ChoiceBowl TossChoice = "bowl"
)

// Player is a member of a team roster. Ball events reference players by ID only,
// so renaming a player never rewrites history.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	BattingOrder *int   `json:"batting_order,omitempty"`
}

// Team is one side of the match. Player order is roster order.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// BallEvent is the outcome of one delivery. Once recorded it is never modified.
type BallEvent struct {
	Runs       int        `json:"runs"`
	IsWicket   bool       `json:"is_wicket"`
	WicketType WicketType `json:"wicket_type,omitempty"`
	IsExtra    bool       `json:"is_extra"`
	ExtraType  ExtraType  `json:"extra_type,omitempty"`
	ExtraRuns  int        `json:"extra_runs"`
	BatsmanID  string     `json:"batsman_id,omitempty"`
	BowlerID   string     `json:"bowler_id,omitempty"`
}

// Over holds the deliveries of one over in the order they were bowled.
type Over struct {
	Number   int         `json:"number"`
	Balls    []BallEvent `json:"balls"`
	Complete bool        `json:"complete"`
}

// TossResult is the confirmed outcome of the toss. Winner is a team index.
type TossResult struct {
	Winner    int        `json:"winner"`
	Choice    TossChoice `json:"choice"`
	Completed bool       `json:"completed"`
}

// TossDraw tracks the coin flips made before the toss is confirmed.
type TossDraw struct {
	Winner    *int `json:"winner,omitempty"`
	Remaining int  `json:"remaining"`
}

// PlayerScore is the running batting and bowling aggregate for one player.
type PlayerScore struct {
	PlayerID     string `json:"player_id"`
	Runs         int    `json:"runs"`
	BallsFaced   int    `json:"balls_faced"`
	WicketsTaken int    `json:"wickets_taken"`
	BallsBowled  int    `json:"balls_bowled"`
	RunsGiven    int    `json:"runs_given"`
}

// ScoreCorrection is a manual adjustment to the batting total. Delta is what was
// actually applied after clamping; Requested is what the scorer asked for.
type ScoreCorrection struct {
	Delta      int `json:"delta"`
	Requested  int `json:"requested"`
	OverNumber int `json:"over_number"`
	LegalBalls int `json:"legal_balls"`
}

// Innings is an archived, finished innings.
type Innings struct {
	TeamIndex   int               `json:"team_index"`
	Score       int               `json:"score"`
	Wickets     int               `json:"wickets"`
	Overs       []Over            `json:"overs"`
	Corrections []ScoreCorrection `json:"corrections,omitempty"`
	CurrentOver int               `json:"current_over"`
	CurrentBall int               `json:"current_ball"`
}

// MatchState is the aggregate root of a match. Transitions never mutate a
// MatchState in place; they return a new value.
type MatchState struct {
	ID                      string            `json:"id"`
	Teams                   [2]Team           `json:"teams"`
	CurrentInningsTeamIndex int               `json:"current_innings_team_index"`
	Overs                   []Over            `json:"overs"`
	CurrentOver             int               `json:"current_over"`
	CurrentBall             int               `json:"current_ball"`
	BattingTeamScore        int               `json:"batting_team_score"`
	BattingTeamWickets      int               `json:"batting_team_wickets"`
	CurrentBatsmen          [2]string         `json:"current_batsmen"`
	CurrentBowler           string            `json:"current_bowler,omitempty"`
	Toss                    *TossResult       `json:"toss,omitempty"`
	TossDraw                TossDraw          `json:"toss_draw"`
	GameStarted             bool              `json:"game_started"`
	PlayerScores            []PlayerScore     `json:"player_scores"`
	Corrections             []ScoreCorrection `json:"corrections,omitempty"`
	CompletedInnings        []Innings         `json:"completed_innings,omitempty"`
}

// BattingTeam returns the team currently batting.
func (s MatchState) BattingTeam() Team {
	return s.Teams[s.CurrentInningsTeamIndex]
}

// BowlingTeam returns the team currently in the field.
func (s MatchState) BowlingTeam() Team {
	return s.Teams[OtherTeam(s.CurrentInningsTeamIndex)]
}

// InningsNumber is 1 for the first innings and 2 after a switch.
func (s MatchState) InningsNumber() int {
	return len(s.CompletedInnings) + 1
}

// Clone returns a deep copy that shares no slices with s.
func (s MatchState) Clone() MatchState {
	c := s
	for i := range s.Teams {
		c.Teams[i] = s.Teams[i].clone()
	}
	c.Overs = cloneOvers(s.Overs)
	if s.Toss != nil {
		t := *s.Toss
		c.Toss = &t
	}
	if s.TossDraw.Winner != nil {
		w := *s.TossDraw.Winner
		c.TossDraw.Winner = &w
	}
	c.PlayerScores = slices.Clone(s.PlayerScores)
	c.Corrections = slices.Clone(s.Corrections)
	if s.CompletedInnings != nil {
		c.CompletedInnings = make([]Innings, len(s.CompletedInnings))
		for i, inn := range s.CompletedInnings {
			inn.Overs = cloneOvers(inn.Overs)
			inn.Corrections = slices.Clone(inn.Corrections)
			c.CompletedInnings[i] = inn
		}
	}
	return c
}

func (t Team) clone() Team {
	c := t
	c.Players = slices.Clone(t.Players)
	for i, p := range c.Players {
		if p.BattingOrder != nil {
			order := *p.BattingOrder
			c.Players[i].BattingOrder = &order
		}
	}
	return c
}

func cloneOvers(overs []Over) []Over {
	c := slices.Clone(overs)
	for i := range c {
		c[i].Balls = slices.Clone(c[i].Balls)
	}
	return c
}
