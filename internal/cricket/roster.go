package cricket

import (
	"strings"

	"github.com/google/uuid"
)

// AddPlayer appends a new player to a roster. The player score table is rebuilt,
// as for any roster change.
func AddPlayer(state MatchState, teamIndex int, name string, role Role) (MatchState, Player, error) {
	if teamIndex != 0 && teamIndex != 1 {
		return state, Player{}, ErrTeamIndex
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return state, Player{}, ErrEmptyName
	}
	if role == "" {
		role = RoleBatsman
	}
	if !validRole(role) {
		return state, Player{}, ErrInvalidRole
	}

	player := Player{ID: uuid.NewString(), Name: name, Role: role}
	teams := state.Clone().Teams
	teams[teamIndex].Players = append(teams[teamIndex].Players, player)
	return UpdateTeams(state, teams), player, nil
}

// RemovePlayer drops a player from a roster and rebuilds the score table.
func RemovePlayer(state MatchState, teamIndex int, playerID string) (MatchState, error) {
	if teamIndex != 0 && teamIndex != 1 {
		return state, ErrTeamIndex
	}
	teams := state.Clone().Teams
	players := teams[teamIndex].Players
	kept := make([]Player, 0, len(players))
	for _, p := range players {
		if p.ID != playerID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(players) {
		return state, ErrPlayerNotFound
	}
	teams[teamIndex].Players = kept
	return UpdateTeams(state, teams), nil
}

// RenameTeam changes a team's display name. Rosters and figures are untouched.
func RenameTeam(state MatchState, teamIndex int, name string) (MatchState, error) {
	if teamIndex != 0 && teamIndex != 1 {
		return state, ErrTeamIndex
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return state, ErrEmptyName
	}
	next := state.Clone()
	next.Teams[teamIndex].Name = name
	return next, nil
}

// FindPlayer looks a player up in either roster.
func FindPlayer(state MatchState, playerID string) (Player, int, bool) {
	for i, t := range state.Teams {
		for _, p := range t.Players {
			if p.ID == playerID {
				return p, i, true
			}
		}
	}
	return Player{}, -1, false
}
