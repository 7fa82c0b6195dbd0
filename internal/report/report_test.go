package report

import (
	"testing"
	"time"

	"github.com/mauv0809/crease/internal/cricket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playedMatch(t *testing.T) cricket.MatchState {
	t.Helper()
	state := cricket.UpdateTeams(cricket.InitializeMatch(), [2]cricket.Team{
		{ID: "1", Name: "Lions", Players: []cricket.Player{{ID: "a1", Name: "Asha", Role: cricket.RoleBatsman}, {ID: "a2", Name: "Ben", Role: cricket.RoleBowler}}},
		{ID: "2", Name: "Tigers", Players: []cricket.Player{{ID: "b1", Name: "Dev", Role: cricket.RoleBatsman}, {ID: "b2", Name: "Eli", Role: cricket.RoleBowler}}},
	})
	state.ID = "m1"
	state, err := cricket.CompleteToss(state, cricket.TossResult{Winner: 0, Choice: cricket.ChoiceBat})
	require.NoError(t, err)
	for range 6 {
		state, err = cricket.RecordBall(state, cricket.BallEvent{Runs: 1, BatsmanID: "a1", BowlerID: "b2"})
		require.NoError(t, err)
	}
	return state
}

func TestNewProjection(t *testing.T) {
	state := playedMatch(t)
	before := state.Clone()

	p := NewProjection(state)

	assert.Equal(t, before, state, "projection must not modify the match")
	assert.Equal(t, "Lions", p.BattingTeam)
	assert.Equal(t, 6, p.Score)
	assert.Equal(t, "1.0", p.Overs)
	assert.Equal(t, "6.00", p.RunRate)
	assert.Equal(t, "Lions won the toss and chose to bat first", p.TossLine)
	assert.Equal(t, "Lions", p.Leader)
	require.Len(t, p.OverSummaries, 2)
	assert.Equal(t, cricket.OverSummary{Number: 1, Runs: 6, Complete: true}, p.OverSummaries[0])
	require.Len(t, p.Scorecards, 1)

	t.Run("includes finished innings", func(t *testing.T) {
		next := cricket.SwitchInnings(state)
		p := NewProjection(next)

		require.Len(t, p.Previous, 1)
		assert.Equal(t, InningsTotal{Number: 1, Team: "Lions", Score: 6, Wickets: 0, Overs: "1.0"}, p.Previous[0])
		assert.Len(t, p.Scorecards, 2)
		assert.Equal(t, "Tigers", p.BattingTeam)
	})
}

func TestRender(t *testing.T) {
	date := time.Date(2026, 5, 17, 14, 30, 0, 0, time.UTC)
	p := NewProjection(playedMatch(t))

	t.Run("text", func(t *testing.T) {
		doc, err := Render(p, FormatText, date)
		require.NoError(t, err)

		assert.Equal(t, "cricket_match_2026-05-17.txt", doc.FileName)
		assert.Equal(t, "text/plain; charset=utf-8", doc.ContentType)
		assert.Contains(t, doc.Body, "Cricket Match Report")
		assert.Contains(t, doc.Body, "Lions vs Tigers")
		assert.Contains(t, doc.Body, "Lions won the toss and chose to bat first")
		assert.Contains(t, doc.Body, "Lions: 6/0 (1st innings)")
		assert.Contains(t, doc.Body, "Overs: 1.0")
		assert.Contains(t, doc.Body, "Run Rate: 6.00")
		assert.Contains(t, doc.Body, "Leading: Lions")
		assert.Contains(t, doc.Body, "Asha")
		assert.Contains(t, doc.Body, "In progress")
		assert.Contains(t, doc.Body, "1st innings: Lions")
	})

	t.Run("markdown", func(t *testing.T) {
		doc, err := Render(p, FormatMarkdown, date)
		require.NoError(t, err)

		assert.Equal(t, "cricket_match_2026-05-17.md", doc.FileName)
		assert.Contains(t, doc.Body, "# Cricket Match Report")
		assert.Contains(t, doc.Body, "## Over Summary")
		assert.Contains(t, doc.Body, "| Over | Runs | Wickets | Status |")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Render(p, "pdf", date)
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}
