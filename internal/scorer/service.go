package scorer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/crease/internal/cricket"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/pubsub"
	"github.com/mauv0809/crease/internal/report"
	"github.com/mauv0809/crease/internal/scorebook"
)

var _ Service = (*Scorer)(nil)

// New creates a new Scorer.
func New(store scorebook.Store, counters metrics.CounterStore, metrics metrics.Metrics, pubsub pubsub.PubSubClient) *Scorer {
	return &Scorer{
		store:    store,
		counters: counters,
		metrics:  metrics,
		pubsub:   pubsub,
		coin:     cricket.RandomCoin{},
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// WithCoin replaces the coin used for toss flips.
func (s *Scorer) WithCoin(coin cricket.Coin) *Scorer {
	s.coin = coin
	return s
}

type transition func(cricket.MatchState) (cricket.MatchState, error)

type persister func(prev, next cricket.MatchState) error

// apply runs one transition under the match lock. The new snapshot replaces the
// live one only after it has been persisted; on any error the old one stays.
func (s *Scorer) apply(ctx context.Context, op, matchID string, dryRun bool, fn transition, persist persister) (cricket.MatchState, cricket.MatchState, error) {
	start := time.Now()
	sess, err := s.session(matchID)
	if err != nil {
		return cricket.MatchState{}, cricket.MatchState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	prev := sess.state
	if sess.deleted {
		return prev, prev, ErrMatchNotFound
	}
	if err := ctx.Err(); err != nil {
		return prev, prev, err
	}

	next, err := fn(prev)
	if err != nil {
		s.metrics.IncTransitionsRejected(op)
		log.Warn("Rejected match transition", "operation", op, "matchID", matchID, "error", err)
		return prev, prev, err
	}
	if dryRun {
		log.Info("[Dry Run] Would apply match transition", "operation", op, "matchID", matchID)
		return prev, next.Clone(), nil
	}

	if persist == nil {
		persist = func(_, next cricket.MatchState) error { return s.store.SaveMatch(next) }
	}
	if err := persist(prev, next); err != nil {
		log.Error("Failed to persist match transition", "error", err, "operation", op, "matchID", matchID)
		return prev, prev, fmt.Errorf("failed to persist %s: %w", op, err)
	}
	sess.state = next
	s.metrics.ObserveTransitionDuration(op, time.Since(start).Seconds())
	log.Debug("Applied match transition", "operation", op, "matchID", matchID)
	return prev, next.Clone(), nil
}

// session returns the live session for a match, loading it from the store on
// first use.
func (s *Scorer) session(matchID string) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[matchID]; ok {
		return sess, nil
	}
	state, err := s.store.GetMatch(matchID)
	if errors.Is(err, scorebook.ErrNotFound) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		log.Error("Failed to load match", "error", err, "matchID", matchID)
		return nil, err
	}
	sess := &session{state: state}
	s.sessions[matchID] = sess
	return sess, nil
}

func (s *Scorer) publish(topic pubsub.EventType, data any, matchID string) {
	if err := s.pubsub.SendMessage(topic, data); err != nil {
		log.Error("Failed to publish match event", "error", err, "topic", topic, "matchID", matchID)
		return
	}
	s.metrics.IncEventsPublished(string(topic))
}

// CreateMatch starts a new match with default teams.
func (s *Scorer) CreateMatch(ctx context.Context, dryRun bool) (cricket.MatchState, error) {
	if err := ctx.Err(); err != nil {
		return cricket.MatchState{}, err
	}
	state := cricket.InitializeMatch()
	state.ID = uuid.NewString()
	if dryRun {
		log.Info("[Dry Run] Would create match", "matchID", state.ID)
		return state, nil
	}
	if err := s.store.SaveMatch(state); err != nil {
		log.Error("Failed to save new match", "error", err, "matchID", state.ID)
		return cricket.MatchState{}, err
	}

	s.mu.Lock()
	s.sessions[state.ID] = &session{state: state}
	s.mu.Unlock()

	s.metrics.IncMatchesCreated()
	s.count(metrics.KeyMatchesCreated, state.ID)
	log.Info("Match created", "matchID", state.ID)
	return state.Clone(), nil
}

// Match returns the latest snapshot.
func (s *Scorer) Match(ctx context.Context, matchID string) (cricket.MatchState, error) {
	if err := ctx.Err(); err != nil {
		return cricket.MatchState{}, err
	}
	sess, err := s.session(matchID)
	if err != nil {
		return cricket.MatchState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.deleted {
		return cricket.MatchState{}, ErrMatchNotFound
	}
	return sess.state.Clone(), nil
}

// ListMatches lists stored matches.
func (s *Scorer) ListMatches(ctx context.Context) ([]scorebook.MatchSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.GetAllMatches()
}

// DeleteMatch drops a match and its ball log. It waits for any transition in
// flight on the match, so nothing can write the match back afterwards.
func (s *Scorer) DeleteMatch(ctx context.Context, matchID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sess, err := s.session(matchID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.deleted {
		return ErrMatchNotFound
	}
	if err := s.store.DeleteMatch(matchID); err != nil {
		if errors.Is(err, scorebook.ErrNotFound) {
			return ErrMatchNotFound
		}
		log.Error("Failed to delete match", "error", err, "matchID", matchID)
		return err
	}
	sess.deleted = true

	s.mu.Lock()
	if s.sessions[matchID] == sess {
		delete(s.sessions, matchID)
	}
	s.mu.Unlock()
	log.Info("Match deleted", "matchID", matchID)
	return nil
}

func (s *Scorer) UpdateTeams(ctx context.Context, matchID string, teams [2]cricket.Team, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "update_teams", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.UpdateTeams(st, teams), nil
	}, nil)
	return next, err
}

func (s *Scorer) AddPlayer(ctx context.Context, matchID string, teamIndex int, name string, role cricket.Role, dryRun bool) (cricket.MatchState, cricket.Player, error) {
	var added cricket.Player
	_, next, err := s.apply(ctx, "add_player", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		next, p, err := cricket.AddPlayer(st, teamIndex, name, role)
		added = p
		return next, err
	}, nil)
	return next, added, err
}

func (s *Scorer) RemovePlayer(ctx context.Context, matchID string, teamIndex int, playerID string, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "remove_player", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.RemovePlayer(st, teamIndex, playerID)
	}, nil)
	return next, err
}

func (s *Scorer) RenameTeam(ctx context.Context, matchID string, teamIndex int, name string, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "rename_team", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.RenameTeam(st, teamIndex, name)
	}, nil)
	return next, err
}

func (s *Scorer) FlipCoin(ctx context.Context, matchID string, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "flip_coin", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.FlipCoin(st, s.coin)
	}, nil)
	return next, err
}

func (s *Scorer) SelectTossWinner(ctx context.Context, matchID string, winner int, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "select_toss_winner", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.SelectTossWinner(st, winner)
	}, nil)
	return next, err
}

func (s *Scorer) CompleteToss(ctx context.Context, matchID string, toss cricket.TossResult, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "complete_toss", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.CompleteToss(st, toss)
	}, nil)
	if err == nil && !dryRun {
		s.tossCompleted(next)
	}
	return next, err
}

func (s *Scorer) ConfirmToss(ctx context.Context, matchID string, choice cricket.TossChoice, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "complete_toss", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.ConfirmToss(st, choice)
	}, nil)
	if err == nil && !dryRun {
		s.tossCompleted(next)
	}
	return next, err
}

func (s *Scorer) tossCompleted(state cricket.MatchState) {
	log.Info("Toss completed", "matchID", state.ID, "winner", state.Teams[state.Toss.Winner].Name, "choice", state.Toss.Choice)
	s.publish(pubsub.EventTossCompleted, TossCompleted{
		MatchID:     state.ID,
		Winner:      state.Teams[state.Toss.Winner].Name,
		Choice:      state.Toss.Choice,
		BattingTeam: state.BattingTeam().Name,
	}, state.ID)
}

// RecordBall records a delivery and writes it to the ball log in the same
// transaction as the new snapshot.
func (s *Scorer) RecordBall(ctx context.Context, matchID string, ball cricket.BallEvent, dryRun bool) (cricket.MatchState, error) {
	var delivery scorebook.Delivery
	prev, next, err := s.apply(ctx, "record_ball", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.RecordBall(st, ball)
	}, func(prev, next cricket.MatchState) error {
		delivery = newDelivery(prev, next, s.now())
		return s.store.RecordDelivery(next, delivery)
	})
	if err != nil || dryRun {
		return next, err
	}

	recorded := delivery.Ball
	s.metrics.IncBallsRecorded()
	s.count(metrics.KeyBallsRecorded, matchID)
	s.publish(pubsub.EventBallRecorded, BallRecorded{
		MatchID:       matchID,
		InningsNumber: delivery.InningsNumber,
		OverNumber:    delivery.OverNumber,
		Seq:           delivery.Seq,
		Ball:          recorded,
		Description:   cricket.Describe(recorded),
		BattingTeam:   next.BattingTeam().Name,
		Score:         next.BattingTeamScore,
		Wickets:       next.BattingTeamWickets,
		Overs:         cricket.OversDisplay(next),
		RunRate:       cricket.RunRate(next),
	}, matchID)

	if recorded.IsWicket {
		s.metrics.IncWickets()
		s.count(metrics.KeyWickets, matchID)
		log.Info("Wicket", "matchID", matchID, "score", next.BattingTeamScore, "wickets", next.BattingTeamWickets, "type", recorded.WicketType)
		s.publish(pubsub.EventWicketFallen, WicketFallen{
			MatchID:     matchID,
			BattingTeam: prev.BattingTeam().Name,
			BowlingTeam: prev.BowlingTeam().Name,
			Batsman:     playerName(next, recorded.BatsmanID),
			Bowler:      playerName(next, recorded.BowlerID),
			WicketType:  recorded.WicketType,
			Score:       next.BattingTeamScore,
			Wickets:     next.BattingTeamWickets,
			Overs:       cricket.OversDisplay(next),
		}, matchID)
	}
	return next, nil
}

func newDelivery(prev, next cricket.MatchState, at time.Time) scorebook.Delivery {
	overNumber := prev.CurrentOver
	seq := len(cricket.CurrentOver(prev).Balls) + 1
	ball, _ := cricket.BallAt(next, overNumber, seq)
	return scorebook.Delivery{
		MatchID:       next.ID,
		InningsNumber: prev.InningsNumber(),
		OverNumber:    overNumber,
		Seq:           seq,
		Ball:          ball,
		CreatedAt:     at.Unix(),
	}
}

func (s *Scorer) AdjustWickets(ctx context.Context, matchID string, delta int, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "adjust_wickets", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.AdjustWickets(st, delta), nil
	}, nil)
	return next, err
}

func (s *Scorer) AdjustScore(ctx context.Context, matchID string, delta int, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "adjust_score", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.AdjustScore(st, delta), nil
	}, nil)
	return next, err
}

func (s *Scorer) SwitchInnings(ctx context.Context, matchID string, dryRun bool) (cricket.MatchState, error) {
	prev, next, err := s.apply(ctx, "switch_innings", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.SwitchInnings(st), nil
	}, nil)
	if err != nil || dryRun {
		return next, err
	}

	s.count(metrics.KeyInningsPlayed, matchID)
	log.Info("Innings switched", "matchID", matchID, "score", prev.BattingTeamScore, "wickets", prev.BattingTeamWickets)
	s.publish(pubsub.EventInningsSwitched, InningsSwitched{
		MatchID:         matchID,
		InningsNumber:   prev.InningsNumber(),
		Team:            prev.BattingTeam().Name,
		Score:           prev.BattingTeamScore,
		Wickets:         prev.BattingTeamWickets,
		Overs:           cricket.OversDisplay(prev),
		NextBattingTeam: next.BattingTeam().Name,
		Target:          prev.BattingTeamScore + 1,
	}, matchID)
	return next, nil
}

func (s *Scorer) SetBatsmen(ctx context.Context, matchID, strikerID, nonStrikerID string, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "set_batsmen", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.SetBatsmen(st, strikerID, nonStrikerID)
	}, nil)
	return next, err
}

func (s *Scorer) SetBowler(ctx context.Context, matchID, bowlerID string, dryRun bool) (cricket.MatchState, error) {
	_, next, err := s.apply(ctx, "set_bowler", matchID, dryRun, func(st cricket.MatchState) (cricket.MatchState, error) {
		return cricket.SetBowler(st, bowlerID)
	}, nil)
	return next, err
}

// Scorecard returns the batting and bowling cards of an innings. Zero selects the
// innings in progress.
func (s *Scorer) Scorecard(ctx context.Context, matchID string, inningsNumber int) (cricket.Scorecard, error) {
	state, err := s.Match(ctx, matchID)
	if err != nil {
		return cricket.Scorecard{}, err
	}
	if inningsNumber == 0 {
		return cricket.CurrentScorecard(state), nil
	}
	card, ok := cricket.InningsScorecard(state, inningsNumber)
	if !ok {
		return cricket.Scorecard{}, ErrInningsNotFound
	}
	return card, nil
}

// Deliveries returns the stored ball log.
func (s *Scorer) Deliveries(ctx context.Context, matchID string) ([]scorebook.Delivery, error) {
	if _, err := s.Match(ctx, matchID); err != nil {
		return nil, err
	}
	return s.store.GetDeliveries(matchID)
}

// Report renders the current snapshot.
func (s *Scorer) Report(ctx context.Context, matchID string, format report.Format) (report.Document, error) {
	state, err := s.Match(ctx, matchID)
	if err != nil {
		return report.Document{}, err
	}
	return report.Render(report.NewProjection(state), format, s.now())
}

// count bumps a lifetime total. The transition is already saved, so a failed
// write is logged and the total drifts low.
func (s *Scorer) count(key, matchID string) {
	if err := s.counters.Increment(key); err != nil {
		log.Warn("Lifetime total not updated", "error", err, "key", key, "matchID", matchID)
	}
}

// Totals returns the lifetime counters.
func (s *Scorer) Totals() (map[string]int, error) {
	return s.counters.GetAll()
}
