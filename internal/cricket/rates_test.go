package cricket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunRate(t *testing.T) {
	tests := []struct {
		name  string
		over  int
		ball  int
		score int
		want  string
	}{
		{"no balls bowled", 1, 0, 0, "0.00"},
		{"runs from wides before a legal ball", 1, 0, 3, "0.00"},
		{"two full overs", 3, 0, 24, "12.00"},
		{"part over", 2, 3, 10, "6.67"},
		{"single ball", 1, 1, 4, "24.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := MatchState{CurrentOver: tt.over, CurrentBall: tt.ball, BattingTeamScore: tt.score}
			assert.Equal(t, tt.want, RunRate(state))
		})
	}
}

func TestOversDisplay(t *testing.T) {
	state := mustRecord(t, startedMatch(t), singles(9)...)
	assert.Equal(t, "1.3", OversDisplay(state))
	assert.InDelta(t, 1.5, OversFaced(state), 1e-9)
}

func TestStrikeRate(t *testing.T) {
	assert.Equal(t, "0.0", StrikeRate(PlayerScore{Runs: 4}))
	assert.Equal(t, "150.0", StrikeRate(PlayerScore{Runs: 6, BallsFaced: 4}))
	assert.Equal(t, "33.3", StrikeRate(PlayerScore{Runs: 1, BallsFaced: 3}))
}

func TestEconomyRate(t *testing.T) {
	tests := []struct {
		name  string
		balls int
		runs  int
		want  string
	}{
		{"nothing bowled", 0, 5, "0.0"},
		{"one over", 6, 9, "9.0"},
		{"overs use cricket notation", 8, 12, "10.0"},
		{"part over only", 3, 6, "20.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EconomyRate(PlayerScore{BallsBowled: tt.balls, RunsGiven: tt.runs}))
		})
	}
}

func TestOversNotation(t *testing.T) {
	assert.Equal(t, "0.0", OversNotation(0))
	assert.Equal(t, "1.2", OversNotation(8))
	assert.Equal(t, "4.0", OversNotation(24))
}
