package cricket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayer(t *testing.T) {
	state := InitializeMatch()

	state, p, err := AddPlayer(state, 1, "  Gita ", "")
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Gita", p.Name)
	assert.Equal(t, RoleBatsman, p.Role)
	require.Len(t, state.Teams[1].Players, 1)
	assert.Equal(t, p, state.Teams[1].Players[0])
	assert.Equal(t, []PlayerScore{{PlayerID: p.ID}}, state.PlayerScores)

	_, _, err = AddPlayer(state, 0, "   ", RoleBowler)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, _, err = AddPlayer(state, 2, "Hal", RoleBowler)
	assert.ErrorIs(t, err, ErrTeamIndex)

	_, _, err = AddPlayer(state, 0, "Hal", "Twelfth man")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestRemovePlayer(t *testing.T) {
	state := mustRecord(t, startedMatch(t), singles(2)...)

	next, err := RemovePlayer(state, 0, "a2")
	require.NoError(t, err)
	assert.Len(t, next.Teams[0].Players, 2)
	assert.Len(t, next.PlayerScores, 5)
	batsman, _ := PlayerScoreFor(next, "a1")
	assert.Zero(t, batsman.Runs, "table is rebuilt")

	_, err = RemovePlayer(state, 0, "b1")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Len(t, state.Teams[0].Players, 3)

	t.Run("removing a selected player clears the selection", func(t *testing.T) {
		state, err := SetBatsmen(startedMatch(t), "a1", "a2")
		require.NoError(t, err)
		state, err = SetBowler(state, "b2")
		require.NoError(t, err)

		next, err := RemovePlayer(state, 0, "a1")
		require.NoError(t, err)
		assert.Equal(t, [2]string{"", "a2"}, next.CurrentBatsmen)
		assert.Equal(t, "b2", next.CurrentBowler)

		next, err = RemovePlayer(next, 1, "b2")
		require.NoError(t, err)
		assert.Empty(t, next.CurrentBowler)
	})
}

func TestRenameTeam(t *testing.T) {
	state := mustRecord(t, startedMatch(t), singles(2)...)

	next, err := RenameTeam(state, 0, "Pride")
	require.NoError(t, err)
	assert.Equal(t, "Pride", next.Teams[0].Name)
	assert.Equal(t, "Lions", state.Teams[0].Name)
	assert.Equal(t, state.PlayerScores, next.PlayerScores)

	_, err = RenameTeam(state, 1, "")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestFindPlayer(t *testing.T) {
	state := startedMatch(t)

	p, team, ok := FindPlayer(state, "b3")
	require.True(t, ok)
	assert.Equal(t, "Fay", p.Name)
	assert.Equal(t, 1, team)

	_, _, ok = FindPlayer(state, "zz")
	assert.False(t, ok)
}
