package main

import (
	"context"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mauv0809/crease/internal/config"
	"github.com/mauv0809/crease/internal/cricket"
	"github.com/mauv0809/crease/internal/database"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/pubsub"
	"github.com/mauv0809/crease/internal/scorebook"
	"github.com/mauv0809/crease/internal/scorer"
)

const (
	defaultMatches = 3
	defaultOvers   = 5
)

var squads = [2]cricket.Team{
	{ID: "1", Name: "Seeder Lions", Players: []cricket.Player{
		{ID: "lions-1", Name: "Asha", Role: cricket.RoleBatsman},
		{ID: "lions-2", Name: "Ben", Role: cricket.RoleAllRounder},
		{ID: "lions-3", Name: "Cal", Role: cricket.RoleWicketKeeper},
		{ID: "lions-4", Name: "Dina", Role: cricket.RoleBowler},
	}},
	{ID: "2", Name: "Seeder Tigers", Players: []cricket.Player{
		{ID: "tigers-1", Name: "Eli", Role: cricket.RoleBatsman},
		{ID: "tigers-2", Name: "Fay", Role: cricket.RoleAllRounder},
		{ID: "tigers-3", Name: "Gus", Role: cricket.RoleWicketKeeper},
		{ID: "tigers-4", Name: "Hana", Role: cricket.RoleBowler},
	}},
}

func envInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Warn("Invalid value, using default", "key", key, "value", v, "default", fallback)
	}
	return fallback
}

func main() {
	log.Info("Starting database seeder...")
	cfg := config.Load()
	numMatches := envInt("SEED_MATCHES", defaultMatches)
	overs := envInt("SEED_OVERS", defaultOvers)

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	// Seeded matches are not announced.
	events, _ := pubsub.New("")
	svc := scorer.New(scorebook.New(db), metrics.NewCounterStore(db), metrics.NewService(), events)

	ctx := context.Background()
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	startTime := time.Now()
	for i := range numMatches {
		matchID, err := seedMatch(ctx, svc, rng, overs)
		if err != nil {
			log.Fatalf("Failed to seed %s match: %s", humanize.Ordinal(i+1), err)
		}
		log.Info("Seeded match", "number", i+1, "matchID", matchID)
	}
	log.Info("Seeding complete", "matches", numMatches, "duration", time.Since(startTime))
}

// seedMatch plays a full two-innings match of random deliveries.
func seedMatch(ctx context.Context, svc scorer.Service, rng *rand.Rand, overs int) (string, error) {
	state, err := svc.CreateMatch(ctx, false)
	if err != nil {
		return "", err
	}
	matchID := state.ID
	if _, err := svc.UpdateTeams(ctx, matchID, squads, false); err != nil {
		return matchID, err
	}
	choice := cricket.ChoiceBat
	if rng.IntN(2) == 1 {
		choice = cricket.ChoiceBowl
	}
	if state, err = svc.CompleteToss(ctx, matchID, cricket.TossResult{Winner: rng.IntN(2), Choice: choice}, false); err != nil {
		return matchID, err
	}

	for innings := range 2 {
		if innings == 1 {
			if state, err = svc.SwitchInnings(ctx, matchID, false); err != nil {
				return matchID, err
			}
		}
		if state, err = playInnings(ctx, svc, state, rng, overs); err != nil {
			return matchID, err
		}
	}
	return matchID, nil
}

func playInnings(ctx context.Context, svc scorer.Service, state cricket.MatchState, rng *rand.Rand, overs int) (cricket.MatchState, error) {
	batting, bowling := state.BattingTeam().Players, state.BowlingTeam().Players
	next := 2
	state, err := svc.SetBatsmen(ctx, state.ID, batting[0].ID, batting[1].ID, false)
	if err != nil {
		return state, err
	}

	allOut := func() bool { return state.BattingTeamWickets >= len(batting)-1 }
	for over := range overs {
		if allOut() {
			break
		}
		bowler := bowling[len(bowling)-1-over%2]
		if state, err = svc.SetBowler(ctx, state.ID, bowler.ID, false); err != nil {
			return state, err
		}
		current := state.CurrentOver
		for state.CurrentOver == current && !allOut() {
			ball := randomBall(rng)
			if state, err = svc.RecordBall(ctx, state.ID, ball, false); err != nil {
				return state, err
			}
			if ball.IsWicket && next < len(batting) {
				if state, err = svc.SetBatsmen(ctx, state.ID, batting[next].ID, state.CurrentBatsmen[1], false); err != nil {
					return state, err
				}
				next++
			}
		}
	}
	return state, nil
}

// randomBall draws a delivery with roughly club-cricket frequencies.
func randomBall(rng *rand.Rand) cricket.BallEvent {
	switch roll := rng.IntN(100); {
	case roll < 4:
		return cricket.BallEvent{IsWicket: true, WicketType: []cricket.WicketType{cricket.WicketBowled, cricket.WicketCaught, cricket.WicketLBW}[rng.IntN(3)]}
	case roll < 8:
		return cricket.BallEvent{IsExtra: true, ExtraType: cricket.ExtraWide, ExtraRuns: 1}
	case roll < 10:
		return cricket.BallEvent{IsExtra: true, ExtraType: cricket.ExtraNoBall, ExtraRuns: 1, Runs: rng.IntN(3)}
	case roll < 40:
		return cricket.BallEvent{}
	case roll < 85:
		return cricket.BallEvent{Runs: 1 + rng.IntN(3)}
	case roll < 95:
		return cricket.BallEvent{Runs: 4}
	default:
		return cricket.BallEvent{Runs: 6}
	}
}
