package cricket

import (
	"slices"

	"github.com/charmbracelet/log"
)

const (
	// MaxWickets is the most wickets an innings can lose.
	MaxWickets = 10
	// MinPlayersPerTeam is the smallest roster a match can start with.
	MinPlayersPerTeam = 2
)

// InitializeMatch returns a fresh match: two empty teams, one empty over, no toss.
func InitializeMatch() MatchState {
	return MatchState{
		Teams: [2]Team{
			{ID: "1", Name: "Team 1", Players: []Player{}},
			{ID: "2", Name: "Team 2", Players: []Player{}},
		},
		Overs:        []Over{NewOver(1)},
		CurrentOver:  1,
		TossDraw:     TossDraw{Remaining: DefaultTossAttempts},
		PlayerScores: []PlayerScore{},
	}
}

// OtherTeam returns the index of the opposing team.
func OtherTeam(index int) int {
	if index == 0 {
		return 1
	}
	return 0
}

// UpdateTeams replaces both rosters and rebuilds the player score table with
// zeros. Figures from balls already bowled are not reattributed.
func UpdateTeams(state MatchState, teams [2]Team) MatchState {
	next := state.Clone()
	for i := range teams {
		next.Teams[i] = teams[i].clone()
	}
	next.PlayerScores = NewPlayerScores(next.Teams)
	clearStaleSelections(&next)
	return next
}

// clearStaleSelections blanks the batsmen and bowler who are no longer on
// either roster, so later balls never credit a missing player.
func clearStaleSelections(state *MatchState) {
	for i, id := range state.CurrentBatsmen {
		if id == "" {
			continue
		}
		if _, _, ok := FindPlayer(*state, id); !ok {
			state.CurrentBatsmen[i] = ""
		}
	}
	if state.CurrentBowler != "" {
		if _, _, ok := FindPlayer(*state, state.CurrentBowler); !ok {
			state.CurrentBowler = ""
		}
	}
}

// CanStartGame reports whether both rosters are big enough to toss.
func CanStartGame(state MatchState) bool {
	return len(state.Teams[0].Players) >= MinPlayersPerTeam &&
		len(state.Teams[1].Players) >= MinPlayersPerTeam
}

// RecordBall appends a delivery to the current over and folds it into the team
// totals and the player score table in a single step. The over rolls over once
// it holds six legal deliveries.
func RecordBall(state MatchState, event BallEvent) (MatchState, error) {
	if err := event.Validate(); err != nil {
		return state, err
	}
	idx := overIndex(state.Overs, state.CurrentOver)
	if idx < 0 {
		log.Warn("Current over missing from over log, ignoring ball", "matchID", state.ID, "currentOver", state.CurrentOver, "overs", len(state.Overs))
		return state, ErrOverMissing
	}

	if event.BatsmanID == "" {
		event.BatsmanID = state.CurrentBatsmen[0]
	}
	if event.BowlerID == "" {
		event.BowlerID = state.CurrentBowler
	}

	next := state.Clone()
	over := &next.Overs[idx]
	over.Balls = append(over.Balls, event)

	next.BattingTeamScore += event.TotalRuns()
	if event.IsWicket {
		next.BattingTeamWickets = clampWickets(next.BattingTeamWickets + 1)
	}
	next.PlayerScores = ApplyBall(next.PlayerScores, event)

	legal := LegalDeliveries(*over)
	if legal >= BallsPerOver {
		over.Complete = true
		next.Overs = append(next.Overs, NewOver(next.CurrentOver+1))
		next.CurrentOver++
		next.CurrentBall = 0
	} else {
		next.CurrentBall = legal
	}
	return next, nil
}

// AdjustWickets applies a manual correction to the wicket count, clamped to
// [0, MaxWickets]. The over log is not touched.
func AdjustWickets(state MatchState, delta int) MatchState {
	next := state.Clone()
	next.BattingTeamWickets = clampWickets(state.BattingTeamWickets + delta)
	return next
}

// AdjustScore applies a manual correction to the batting total. The total never
// drops below zero; the correction records the delta that was actually applied.
func AdjustScore(state MatchState, delta int) MatchState {
	applied := delta
	if state.BattingTeamScore+applied < 0 {
		applied = -state.BattingTeamScore
	}
	next := state.Clone()
	next.BattingTeamScore += applied
	next.Corrections = append(next.Corrections, ScoreCorrection{
		Delta:      applied,
		Requested:  delta,
		OverNumber: state.CurrentOver,
		LegalBalls: state.CurrentBall,
	})
	return next
}

// SwitchInnings archives the current innings, hands the bat to the other team and
// resets the per-innings counters. The player score table is kept.
func SwitchInnings(state MatchState) MatchState {
	next := state.Clone()
	next.CompletedInnings = append(next.CompletedInnings, Innings{
		TeamIndex:   state.CurrentInningsTeamIndex,
		Score:       state.BattingTeamScore,
		Wickets:     state.BattingTeamWickets,
		Overs:       cloneOvers(state.Overs),
		Corrections: slices.Clone(state.Corrections),
		CurrentOver: state.CurrentOver,
		CurrentBall: state.CurrentBall,
	})
	next.CurrentInningsTeamIndex = OtherTeam(state.CurrentInningsTeamIndex)
	next.BattingTeamScore = 0
	next.BattingTeamWickets = 0
	next.Overs = []Over{NewOver(1)}
	next.CurrentOver = 1
	next.CurrentBall = 0
	next.CurrentBatsmen = [2]string{}
	next.CurrentBowler = ""
	next.Corrections = nil
	return next
}

// SetBatsmen sets the striker and non-striker. Either may be empty; non-empty IDs
// must belong to the batting team.
func SetBatsmen(state MatchState, strikerID, nonStrikerID string) (MatchState, error) {
	batting := state.BattingTeam()
	for _, id := range []string{strikerID, nonStrikerID} {
		if id != "" && !hasPlayer(batting, id) {
			return state, ErrPlayerNotFound
		}
	}
	if strikerID != "" && strikerID == nonStrikerID {
		return state, ErrSameBatsman
	}
	next := state.Clone()
	next.CurrentBatsmen = [2]string{strikerID, nonStrikerID}
	return next, nil
}

// SetBowler sets the bowler of the current over. An empty ID clears it.
func SetBowler(state MatchState, bowlerID string) (MatchState, error) {
	if bowlerID != "" && !hasPlayer(state.BowlingTeam(), bowlerID) {
		return state, ErrPlayerNotFound
	}
	next := state.Clone()
	next.CurrentBowler = bowlerID
	return next, nil
}

// Leader names the team with the higher total across the innings played so far,
// or "Tie".
func Leader(state MatchState) string {
	var totals [2]int
	for _, inn := range state.CompletedInnings {
		totals[inn.TeamIndex] += inn.Score
	}
	totals[state.CurrentInningsTeamIndex] += state.BattingTeamScore
	switch {
	case totals[0] > totals[1]:
		return state.Teams[0].Name
	case totals[1] > totals[0]:
		return state.Teams[1].Name
	default:
		return "Tie"
	}
}

func clampWickets(w int) int {
	return min(max(w, 0), MaxWickets)
}

func hasPlayer(t Team, id string) bool {
	for _, p := range t.Players {
		if p.ID == id {
			return true
		}
	}
	return false
}
