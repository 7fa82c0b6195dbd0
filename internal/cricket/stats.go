package cricket

import "slices"

// NewPlayerScores builds a zeroed score table with one entry per player across
// both rosters, in roster order. A player listed twice gets one entry.
func NewPlayerScores(teams [2]Team) []PlayerScore {
	seen := make(map[string]bool)
	scores := make([]PlayerScore, 0, len(teams[0].Players)+len(teams[1].Players))
	for _, t := range teams {
		for _, p := range t.Players {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			scores = append(scores, PlayerScore{PlayerID: p.ID})
		}
	}
	return scores
}

// ApplyBall folds one delivery into a copy of the score table. IDs that are not
// in the table are ignored: the roster may have been edited since the ball.
func ApplyBall(scores []PlayerScore, event BallEvent) []PlayerScore {
	next := slices.Clone(scores)
	legal := event.IsLegal()

	if event.BatsmanID != "" {
		if i := scoreIndex(next, event.BatsmanID); i >= 0 {
			next[i].Runs += event.Runs
			if legal {
				next[i].BallsFaced++
			}
		}
	}
	if event.BowlerID != "" {
		if i := scoreIndex(next, event.BowlerID); i >= 0 {
			next[i].RunsGiven += event.TotalRuns()
			if legal {
				next[i].BallsBowled++
			}
			if event.CreditsBowler() {
				next[i].WicketsTaken++
			}
		}
	}
	return next
}

// FoldPlayerScores recomputes the score table from scratch over an over history.
// For the balls recorded since the last roster change it agrees with the table
// RecordBall maintains.
func FoldPlayerScores(teams [2]Team, overs []Over) []PlayerScore {
	scores := NewPlayerScores(teams)
	for _, o := range overs {
		for _, b := range o.Balls {
			scores = ApplyBall(scores, b)
		}
	}
	return scores
}

// PlayerScores returns a copy of the live score table.
func PlayerScores(state MatchState) []PlayerScore {
	return slices.Clone(state.PlayerScores)
}

// PlayerScoreFor looks up one player's figures.
func PlayerScoreFor(state MatchState, playerID string) (PlayerScore, bool) {
	if i := scoreIndex(state.PlayerScores, playerID); i >= 0 {
		return state.PlayerScores[i], true
	}
	return PlayerScore{}, false
}

// BattingLine is one row of the batting card.
type BattingLine struct {
	PlayerID   string `json:"player_id"`
	Name       string `json:"name"`
	Runs       int    `json:"runs"`
	BallsFaced int    `json:"balls_faced"`
	StrikeRate string `json:"strike_rate"`
}

// BowlingLine is one row of the bowling card.
type BowlingLine struct {
	PlayerID    string `json:"player_id"`
	Name        string `json:"name"`
	Overs       string `json:"overs"`
	RunsGiven   int    `json:"runs_given"`
	Wickets     int    `json:"wickets"`
	EconomyRate string `json:"economy_rate"`
}

// Scorecard holds the batting and bowling cards of one innings.
type Scorecard struct {
	InningsNumber int           `json:"innings_number"`
	BattingTeam   string        `json:"batting_team"`
	BowlingTeam   string        `json:"bowling_team"`
	Batting       []BattingLine `json:"batting"`
	Bowling       []BowlingLine `json:"bowling"`
}

// CurrentScorecard builds the cards for the innings in progress by folding its
// overs. Only players who have faced or bowled a ball are listed.
func CurrentScorecard(state MatchState) Scorecard {
	return buildScorecard(state.Teams, state.InningsNumber(), state.CurrentInningsTeamIndex, state.Overs)
}

// InningsScorecard builds the cards for an archived innings.
func InningsScorecard(state MatchState, inningsNumber int) (Scorecard, bool) {
	if inningsNumber == state.InningsNumber() {
		return CurrentScorecard(state), true
	}
	if inningsNumber < 1 || inningsNumber > len(state.CompletedInnings) {
		return Scorecard{}, false
	}
	inn := state.CompletedInnings[inningsNumber-1]
	return buildScorecard(state.Teams, inningsNumber, inn.TeamIndex, inn.Overs), true
}

func buildScorecard(teams [2]Team, number, battingIndex int, overs []Over) Scorecard {
	batting := teams[battingIndex]
	bowling := teams[OtherTeam(battingIndex)]
	scores := FoldPlayerScores(teams, overs)

	card := Scorecard{
		InningsNumber: number,
		BattingTeam:   batting.Name,
		BowlingTeam:   bowling.Name,
		Batting:       []BattingLine{},
		Bowling:       []BowlingLine{},
	}
	for _, p := range batting.Players {
		i := scoreIndex(scores, p.ID)
		if i < 0 || (scores[i].BallsFaced == 0 && scores[i].Runs == 0) {
			continue
		}
		ps := scores[i]
		card.Batting = append(card.Batting, BattingLine{
			PlayerID:   p.ID,
			Name:       p.Name,
			Runs:       ps.Runs,
			BallsFaced: ps.BallsFaced,
			StrikeRate: StrikeRate(ps),
		})
	}
	for _, p := range bowling.Players {
		i := scoreIndex(scores, p.ID)
		if i < 0 || (scores[i].BallsBowled == 0 && scores[i].RunsGiven == 0) {
			continue
		}
		ps := scores[i]
		card.Bowling = append(card.Bowling, BowlingLine{
			PlayerID:    p.ID,
			Name:        p.Name,
			Overs:       OversNotation(ps.BallsBowled),
			RunsGiven:   ps.RunsGiven,
			Wickets:     ps.WicketsTaken,
			EconomyRate: EconomyRate(ps),
		})
	}
	return card
}

func scoreIndex(scores []PlayerScore, playerID string) int {
	for i, s := range scores {
		if s.PlayerID == playerID {
			return i
		}
	}
	return -1
}
