package scorebook

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/cricket"
	"github.com/vmihailenco/msgpack/v5"
)

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

const upsertMatchSQL = `
	INSERT INTO matches (id, team_one_name, team_two_name, batting_team_index, innings_number, score, wickets, current_over, current_ball, game_started, state, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		team_one_name = excluded.team_one_name,
		team_two_name = excluded.team_two_name,
		batting_team_index = excluded.batting_team_index,
		innings_number = excluded.innings_number,
		score = excluded.score,
		wickets = excluded.wickets,
		current_over = excluded.current_over,
		current_ball = excluded.current_ball,
		game_started = excluded.game_started,
		state = excluded.state,
		updated_at = excluded.updated_at;
`

// SaveMatch writes the full snapshot of a match. The summary columns are kept
// alongside so listings do not have to decode every snapshot.
func (s *store) SaveMatch(state cricket.MatchState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := upsertMatch(tx, state); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// RecordDelivery stores the snapshot produced by a ball together with the ball
// itself. Either both rows are written or neither is.
func (s *store) RecordDelivery(state cricket.MatchState, delivery Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := upsertMatch(tx, state); err != nil {
		tx.Rollback()
		return err
	}

	b := delivery.Ball
	createdAt := delivery.CreatedAt
	if createdAt == 0 {
		createdAt = time.Now().Unix()
	}
	_, err = tx.Exec(`
		INSERT INTO deliveries (match_id, innings_number, over_number, seq, runs, is_extra, extra_type, extra_runs, is_wicket, wicket_type, batsman_id, bowler_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, state.ID, delivery.InningsNumber, delivery.OverNumber, delivery.Seq,
		b.Runs, b.IsExtra, nullString(string(b.ExtraType)), b.ExtraRuns,
		b.IsWicket, nullString(string(b.WicketType)), nullString(b.BatsmanID), nullString(b.BowlerID), createdAt)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert delivery: %w", err)
	}
	return tx.Commit()
}

func upsertMatch(tx *sql.Tx, state cricket.MatchState) error {
	blob, err := msgpack.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode match state: %w", err)
	}
	now := time.Now().Unix()
	_, err = tx.Exec(upsertMatchSQL,
		state.ID, state.Teams[0].Name, state.Teams[1].Name, state.CurrentInningsTeamIndex, state.InningsNumber(),
		state.BattingTeamScore, state.BattingTeamWickets, state.CurrentOver, state.CurrentBall, state.GameStarted,
		blob, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", state.ID, err)
	}
	return nil
}

// GetMatch loads the latest snapshot of a match.
func (s *store) GetMatch(matchID string) (cricket.MatchState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob []byte
	err := s.db.QueryRow("SELECT state FROM matches WHERE id = ?", matchID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return cricket.MatchState{}, ErrNotFound
	}
	if err != nil {
		return cricket.MatchState{}, err
	}

	var state cricket.MatchState
	if err := msgpack.Unmarshal(blob, &state); err != nil {
		log.Error("Failed to decode match state", "error", err, "matchID", matchID)
		return cricket.MatchState{}, fmt.Errorf("failed to decode match %s: %w", matchID, err)
	}
	return state, nil
}

// GetAllMatches lists every stored match, most recently updated first.
func (s *store) GetAllMatches() ([]MatchSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, team_one_name, team_two_name, batting_team_index, innings_number, score, wickets, current_over, current_ball, game_started, created_at, updated_at
		FROM matches
		ORDER BY updated_at DESC, id
	`)
	if err != nil {
		log.Error("Failed to query matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	matches := []MatchSummary{}
	for rows.Next() {
		var m MatchSummary
		if err := rows.Scan(&m.ID, &m.TeamOne, &m.TeamTwo, &m.BattingTeamIndex, &m.InningsNumber, &m.Score, &m.Wickets,
			&m.CurrentOver, &m.CurrentBall, &m.GameStarted, &m.CreatedAt, &m.UpdatedAt); err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// GetDeliveries returns the ball log of a match in the order it was bowled.
func (s *store) GetDeliveries(matchID string) ([]Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT innings_number, over_number, seq, runs, is_extra, extra_type, extra_runs, is_wicket, wicket_type, batsman_id, bowler_id, created_at
		FROM deliveries
		WHERE match_id = ?
		ORDER BY innings_number, over_number, seq
	`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := []Delivery{}
	for rows.Next() {
		d := Delivery{MatchID: matchID}
		var extraType, wicketType, batsmanID, bowlerID sql.NullString
		if err := rows.Scan(&d.InningsNumber, &d.OverNumber, &d.Seq, &d.Ball.Runs, &d.Ball.IsExtra, &extraType,
			&d.Ball.ExtraRuns, &d.Ball.IsWicket, &wicketType, &batsmanID, &bowlerID, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Ball.ExtraType = cricket.ExtraType(extraType.String)
		d.Ball.WicketType = cricket.WicketType(wicketType.String)
		d.Ball.BatsmanID = batsmanID.String
		d.Ball.BowlerID = bowlerID.String
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

// DeleteMatch removes a match and its ball log.
func (s *store) DeleteMatch(matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for match delete", "error", err, "matchID", matchID)
		return err
	}
	defer tx.Rollback()

	// The ball log goes explicitly; remote connections may not enforce the cascade.
	if _, err := tx.Exec("DELETE FROM deliveries WHERE match_id = ?", matchID); err != nil {
		log.Error("Failed to delete deliveries", "error", err, "matchID", matchID)
		return err
	}
	res, err := tx.Exec("DELETE FROM matches WHERE id = ?", matchID)
	if err != nil {
		log.Error("Failed to delete match", "error", err, "matchID", matchID)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// Clear removes all matches and deliveries.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}
	for _, table := range []string{"deliveries", "matches"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit clear", "error", err)
		return
	}
	log.Info("Scorebook cleared")
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
