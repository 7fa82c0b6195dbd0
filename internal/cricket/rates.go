package cricket

import (
	"fmt"
	"strconv"
)

// OversFaced is the innings progress in decimal overs, e.g. 2.5 after two overs
// and three balls.
func OversFaced(state MatchState) float64 {
	return float64(state.CurrentOver-1) + float64(state.CurrentBall)/BallsPerOver
}

// OversDisplay renders innings progress in cricket notation ("2.3").
func OversDisplay(state MatchState) string {
	return fmt.Sprintf("%d.%d", state.CurrentOver-1, state.CurrentBall)
}

// RunRate is runs per over for the innings in progress, two decimals.
func RunRate(state MatchState) string {
	overs := OversFaced(state)
	if overs == 0 {
		return "0.00"
	}
	return strconv.FormatFloat(float64(state.BattingTeamScore)/overs, 'f', 2, 64)
}

// StrikeRate is runs per hundred balls faced, one decimal.
func StrikeRate(ps PlayerScore) string {
	if ps.BallsFaced == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(ps.Runs)/float64(ps.BallsFaced)*100, 'f', 1, 64)
}

// EconomyRate is runs conceded per over bowled, one decimal. Overs are counted
// in cricket notation, so 8 balls is 1.2 overs, not 1.33.
func EconomyRate(ps PlayerScore) string {
	overs := oversBowled(ps.BallsBowled)
	if overs == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(ps.RunsGiven)/overs, 'f', 1, 64)
}

// OversNotation renders a ball count as overs ("3.4").
func OversNotation(balls int) string {
	return fmt.Sprintf("%d.%d", balls/BallsPerOver, balls%BallsPerOver)
}

func oversBowled(balls int) float64 {
	return float64(balls/BallsPerOver) + float64(balls%BallsPerOver)/10
}
