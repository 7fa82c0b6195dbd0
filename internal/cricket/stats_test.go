package cricket

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBall(r *rand.Rand) BallEvent {
	batsmen := []string{"a1", "a2", "a3", "ghost", ""}
	bowlers := []string{"b1", "b2", "b3", "ghost", ""}
	b := BallEvent{
		Runs:      r.IntN(7),
		BatsmanID: batsmen[r.IntN(len(batsmen))],
		BowlerID:  bowlers[r.IntN(len(bowlers))],
	}
	switch r.IntN(6) {
	case 0:
		b.IsExtra = true
		b.ExtraType = []ExtraType{ExtraWide, ExtraNoBall, ExtraBye, ExtraLegBye}[r.IntN(4)]
		b.ExtraRuns = 1 + r.IntN(4)
	case 1:
		b.IsWicket = true
		b.WicketType = []WicketType{WicketBowled, WicketCaught, WicketLBW, WicketRunOut, WicketStumped, WicketOther}[r.IntN(6)]
	}
	return b
}

func TestApplyBall(t *testing.T) {
	scores := NewPlayerScores(testTeams())

	t.Run("credits batsman and bowler", func(t *testing.T) {
		next := ApplyBall(scores, BallEvent{Runs: 4, BatsmanID: "a1", BowlerID: "b2"})

		batsman := next[scoreIndex(next, "a1")]
		bowler := next[scoreIndex(next, "b2")]
		assert.Equal(t, PlayerScore{PlayerID: "a1", Runs: 4, BallsFaced: 1}, batsman)
		assert.Equal(t, PlayerScore{PlayerID: "b2", BallsBowled: 1, RunsGiven: 4}, bowler)
		assert.Zero(t, scores[scoreIndex(scores, "a1")].Runs, "input table is not modified")
	})

	t.Run("wide counts against the bowler without a ball", func(t *testing.T) {
		next := ApplyBall(scores, BallEvent{IsExtra: true, ExtraType: ExtraWide, ExtraRuns: 2, BatsmanID: "a1", BowlerID: "b2"})

		assert.Equal(t, PlayerScore{PlayerID: "a1"}, next[scoreIndex(next, "a1")])
		assert.Equal(t, PlayerScore{PlayerID: "b2", RunsGiven: 2}, next[scoreIndex(next, "b2")])
	})

	t.Run("bye is a ball faced and bowled", func(t *testing.T) {
		next := ApplyBall(scores, BallEvent{IsExtra: true, ExtraType: ExtraBye, ExtraRuns: 1, BatsmanID: "a1", BowlerID: "b2"})

		assert.Equal(t, 1, next[scoreIndex(next, "a1")].BallsFaced)
		assert.Equal(t, 1, next[scoreIndex(next, "b2")].BallsBowled)
	})

	t.Run("wickets credit the bowler except run outs", func(t *testing.T) {
		for _, wt := range []WicketType{WicketBowled, WicketCaught, WicketLBW, WicketStumped, WicketOther} {
			next := ApplyBall(scores, BallEvent{IsWicket: true, WicketType: wt, BowlerID: "b2"})
			assert.Equal(t, 1, next[scoreIndex(next, "b2")].WicketsTaken, wt)
		}
		next := ApplyBall(scores, BallEvent{IsWicket: true, WicketType: WicketRunOut, BowlerID: "b2"})
		assert.Equal(t, 0, next[scoreIndex(next, "b2")].WicketsTaken)
	})

	t.Run("unknown players are ignored", func(t *testing.T) {
		next := ApplyBall(scores, BallEvent{Runs: 6, BatsmanID: "nobody", BowlerID: "nobody-else"})
		assert.Equal(t, scores, next)
	})
}

func TestNewPlayerScores(t *testing.T) {
	teams := testTeams()
	teams[1].Players = append(teams[1].Players, teams[0].Players[0])

	scores := NewPlayerScores(teams)

	require.Len(t, scores, 6)
	assert.Equal(t, "a1", scores[0].PlayerID)
	assert.Equal(t, "b3", scores[5].PlayerID)
}

func TestIncrementalMatchesFold(t *testing.T) {
	for seed := range uint64(25) {
		r := rand.New(rand.NewPCG(seed, seed*31+7))
		state := startedMatch(t)
		n := 1 + r.IntN(60)
		for range n {
			var err error
			state, err = RecordBall(state, randomBall(r))
			require.NoError(t, err)
		}

		folded := FoldPlayerScores(state.Teams, state.Overs)
		assert.Equal(t, folded, state.PlayerScores, "seed %d", seed)
	}
}

func TestCurrentScorecard(t *testing.T) {
	state := startedMatch(t)
	state = mustRecord(t, state,
		BallEvent{Runs: 4, BatsmanID: "a1", BowlerID: "b2"},
		BallEvent{Runs: 2, BatsmanID: "a1", BowlerID: "b2"},
		BallEvent{IsExtra: true, ExtraType: ExtraWide, ExtraRuns: 1, BowlerID: "b2"},
		BallEvent{Runs: 0, BatsmanID: "a2", BowlerID: "b2", IsWicket: true, WicketType: WicketBowled},
	)

	card := CurrentScorecard(state)

	assert.Equal(t, 1, card.InningsNumber)
	assert.Equal(t, "Lions", card.BattingTeam)
	assert.Equal(t, "Tigers", card.BowlingTeam)
	require.Len(t, card.Batting, 2)
	assert.Equal(t, BattingLine{PlayerID: "a1", Name: "Asha", Runs: 6, BallsFaced: 2, StrikeRate: "300.0"}, card.Batting[0])
	assert.Equal(t, BattingLine{PlayerID: "a2", Name: "Ben", Runs: 0, BallsFaced: 1, StrikeRate: "0.0"}, card.Batting[1])
	require.Len(t, card.Bowling, 1)
	assert.Equal(t, BowlingLine{PlayerID: "b2", Name: "Eli", Overs: "0.3", RunsGiven: 7, Wickets: 1, EconomyRate: "23.3"}, card.Bowling[0])
}

func TestInningsScorecard(t *testing.T) {
	state := startedMatch(t)
	state = mustRecord(t, state, BallEvent{Runs: 4, BatsmanID: "a1", BowlerID: "b2"})
	state = SwitchInnings(state)
	state = mustRecord(t, state, BallEvent{Runs: 1, BatsmanID: "b1", BowlerID: "a3"})

	first, ok := InningsScorecard(state, 1)
	require.True(t, ok)
	assert.Equal(t, "Lions", first.BattingTeam)
	require.Len(t, first.Batting, 1)
	assert.Equal(t, 4, first.Batting[0].Runs)

	second, ok := InningsScorecard(state, 2)
	require.True(t, ok)
	assert.Equal(t, "Tigers", second.BattingTeam)
	require.Len(t, second.Bowling, 1)
	assert.Equal(t, "Cal", second.Bowling[0].Name)

	_, ok = InningsScorecard(state, 3)
	assert.False(t, ok)
}

func TestPlayerScoreFor(t *testing.T) {
	state := startedMatch(t)

	_, ok := PlayerScoreFor(state, "missing")
	assert.False(t, ok)

	ps, ok := PlayerScoreFor(state, "b1")
	require.True(t, ok)
	assert.Equal(t, PlayerScore{PlayerID: "b1"}, ps)
}
