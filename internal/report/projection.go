package report

import (
	"fmt"

	"github.com/mauv0809/crease/internal/cricket"
)

// NewProjection captures everything a report shows. The state is only read.
func NewProjection(state cricket.MatchState) Projection {
	p := Projection{
		MatchID:       state.ID,
		Teams:         state.Clone().Teams,
		BattingTeam:   state.BattingTeam().Name,
		InningsNumber: state.InningsNumber(),
		Score:         state.BattingTeamScore,
		Wickets:       state.BattingTeamWickets,
		CurrentOver:   state.CurrentOver,
		CurrentBall:   state.CurrentBall,
		Overs:         cricket.OversDisplay(state),
		RunRate:       cricket.RunRate(state),
		Leader:        cricket.Leader(state),
		OverSummaries: cricket.OverSummaries(state),
	}
	if state.Toss != nil && state.Toss.Completed {
		toss := *state.Toss
		p.Toss = &toss
		p.TossLine = fmt.Sprintf("%s won the toss and chose to %s first", state.Teams[toss.Winner].Name, toss.Choice)
	}
	for i, inn := range state.CompletedInnings {
		p.Previous = append(p.Previous, InningsTotal{
			Number:  i + 1,
			Team:    state.Teams[inn.TeamIndex].Name,
			Score:   inn.Score,
			Wickets: inn.Wickets,
			Overs:   fmt.Sprintf("%d.%d", inn.CurrentOver-1, inn.CurrentBall),
		})
	}
	for n := 1; n <= state.InningsNumber(); n++ {
		if card, ok := cricket.InningsScorecard(state, n); ok {
			p.Scorecards = append(p.Scorecards, card)
		}
	}
	return p
}
