package scorer

import (
	"context"

	"github.com/mauv0809/crease/internal/cricket"
	"github.com/mauv0809/crease/internal/report"
	"github.com/mauv0809/crease/internal/scorebook"
)

// Service is the live scoring API. Every mutation is applied to the latest
// snapshot of the match under that match's lock, persisted, and only then made
// visible. With dryRun the transition is computed and returned but nothing is
// stored or published.
type Service interface {
	CreateMatch(ctx context.Context, dryRun bool) (cricket.MatchState, error)
	Match(ctx context.Context, matchID string) (cricket.MatchState, error)
	ListMatches(ctx context.Context) ([]scorebook.MatchSummary, error)
	DeleteMatch(ctx context.Context, matchID string) error

	UpdateTeams(ctx context.Context, matchID string, teams [2]cricket.Team, dryRun bool) (cricket.MatchState, error)
	AddPlayer(ctx context.Context, matchID string, teamIndex int, name string, role cricket.Role, dryRun bool) (cricket.MatchState, cricket.Player, error)
	RemovePlayer(ctx context.Context, matchID string, teamIndex int, playerID string, dryRun bool) (cricket.MatchState, error)
	RenameTeam(ctx context.Context, matchID string, teamIndex int, name string, dryRun bool) (cricket.MatchState, error)

	FlipCoin(ctx context.Context, matchID string, dryRun bool) (cricket.MatchState, error)
	SelectTossWinner(ctx context.Context, matchID string, winner int, dryRun bool) (cricket.MatchState, error)
	CompleteToss(ctx context.Context, matchID string, toss cricket.TossResult, dryRun bool) (cricket.MatchState, error)
	ConfirmToss(ctx context.Context, matchID string, choice cricket.TossChoice, dryRun bool) (cricket.MatchState, error)

	RecordBall(ctx context.Context, matchID string, ball cricket.BallEvent, dryRun bool) (cricket.MatchState, error)
	AdjustWickets(ctx context.Context, matchID string, delta int, dryRun bool) (cricket.MatchState, error)
	AdjustScore(ctx context.Context, matchID string, delta int, dryRun bool) (cricket.MatchState, error)
	SwitchInnings(ctx context.Context, matchID string, dryRun bool) (cricket.MatchState, error)
	SetBatsmen(ctx context.Context, matchID, strikerID, nonStrikerID string, dryRun bool) (cricket.MatchState, error)
	SetBowler(ctx context.Context, matchID, bowlerID string, dryRun bool) (cricket.MatchState, error)

	Scorecard(ctx context.Context, matchID string, inningsNumber int) (cricket.Scorecard, error)
	Deliveries(ctx context.Context, matchID string) ([]scorebook.Delivery, error)
	Report(ctx context.Context, matchID string, format report.Format) (report.Document, error)
	Totals() (map[string]int, error)
}
