package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/cricket"
	"github.com/mauv0809/crease/internal/report"
	"github.com/mauv0809/crease/internal/scorer"
)

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

// writeError maps scoring errors onto HTTP statuses. Rejected transitions leave
// the match untouched, so the client can retry with corrected input.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, scorer.ErrMatchNotFound), errors.Is(err, scorer.ErrInningsNotFound):
		status = http.StatusNotFound
	case errors.Is(err, cricket.ErrNotEnoughPlayers),
		errors.Is(err, cricket.ErrGameAlreadyStarted),
		errors.Is(err, cricket.ErrNoTossWinner),
		errors.Is(err, cricket.ErrNoTossesRemaining),
		errors.Is(err, cricket.ErrOverMissing):
		status = http.StatusConflict
	case errors.Is(err, cricket.ErrInvalidBall),
		errors.Is(err, cricket.ErrInvalidTossChoice),
		errors.Is(err, cricket.ErrTeamIndex),
		errors.Is(err, cricket.ErrPlayerNotFound),
		errors.Is(err, cricket.ErrSameBatsman),
		errors.Is(err, cricket.ErrEmptyName),
		errors.Is(err, cricket.ErrInvalidRole),
		errors.Is(err, report.ErrUnknownFormat):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

// decodeBody reads a JSON request body into v, answering 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn("Failed to decode request body", "error", err, "url", r.URL.Path)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loggerFromContext(r).Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler returns the lifetime counters kept in the database.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals, err := s.Scorer.Totals()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, totals)
	}
}

func (s *Server) CreateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.Scorer.CreateMatch(r.Context(), isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, state)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Scorer.ListMatches(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.Scorer.Match(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.PathValue("id")
		if isDryRunFromContext(r) {
			log.Info("[Dry Run] Would delete match", "matchID", matchID)
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err := s.Scorer.DeleteMatch(r.Context(), matchID); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) UpdateTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req teamsRequest
		if !decodeBody(w, r, &req) {
			return
		}
		var teams [2]cricket.Team
		for i, t := range req.Teams {
			teams[i] = cricket.Team{ID: t.ID, Name: t.Name}
			for _, p := range t.Players {
				teams[i].Players = append(teams[i].Players, cricket.Player{
					ID:           p.ID,
					Name:         p.Name,
					Role:         cricket.Role(p.Role),
					BattingOrder: p.BattingOrder,
				})
			}
		}
		state, err := s.Scorer.UpdateTeams(r.Context(), r.PathValue("id"), teams, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) RenameTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, err := strconv.Atoi(r.PathValue("idx"))
		if err != nil {
			http.Error(w, "Team index must be 0 or 1", http.StatusBadRequest)
			return
		}
		var req renameTeamRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := s.Scorer.RenameTeam(r.Context(), r.PathValue("id"), idx, req.Name, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPlayerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, player, err := s.Scorer.AddPlayer(r.Context(), r.PathValue("id"), req.Team, req.Name, cricket.Role(req.Role), isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, addPlayerResponse{Player: player, Match: state})
	}
}

// RemovePlayerHandler drops a player from whichever team holds them.
func (s *Server) RemovePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID, playerID := r.PathValue("id"), r.PathValue("pid")
		current, err := s.Scorer.Match(r.Context(), matchID)
		if err != nil {
			writeError(w, err)
			return
		}
		_, teamIndex, ok := cricket.FindPlayer(current, playerID)
		if !ok {
			writeError(w, cricket.ErrPlayerNotFound)
			return
		}
		state, err := s.Scorer.RemovePlayer(r.Context(), matchID, teamIndex, playerID, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) FlipCoinHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.Scorer.FlipCoin(r.Context(), r.PathValue("id"), isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) TossWinnerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tossWinnerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := s.Scorer.SelectTossWinner(r.Context(), r.PathValue("id"), req.Winner, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) TossHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tossRequest
		if !decodeBody(w, r, &req) {
			return
		}
		matchID, dryRun := r.PathValue("id"), isDryRunFromContext(r)
		choice := cricket.TossChoice(req.Choice)

		var state cricket.MatchState
		var err error
		if req.Winner != nil {
			state, err = s.Scorer.CompleteToss(r.Context(), matchID, cricket.TossResult{Winner: *req.Winner, Choice: choice}, dryRun)
		} else {
			state, err = s.Scorer.ConfirmToss(r.Context(), matchID, choice, dryRun)
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) RecordBallHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ball cricket.BallEvent
		if !decodeBody(w, r, &ball) {
			return
		}
		state, err := s.Scorer.RecordBall(r.Context(), r.PathValue("id"), ball, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) AdjustWicketsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deltaRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := s.Scorer.AdjustWickets(r.Context(), r.PathValue("id"), req.Delta, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) AdjustScoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deltaRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := s.Scorer.AdjustScore(r.Context(), r.PathValue("id"), req.Delta, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) SwitchInningsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := s.Scorer.SwitchInnings(r.Context(), r.PathValue("id"), isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) SetBatsmenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req batsmenRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := s.Scorer.SetBatsmen(r.Context(), r.PathValue("id"), req.Striker, req.NonStriker, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) SetBowlerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bowlerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		state, err := s.Scorer.SetBowler(r.Context(), r.PathValue("id"), req.Bowler, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

// ScorecardHandler returns the cards of the innings given by ?innings=N, or the
// innings in progress when omitted.
func (s *Server) ScorecardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		innings := 0
		if v := r.URL.Query().Get("innings"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				log.Warn("Invalid 'innings' parameter provided", "innings_param", v)
				http.Error(w, "innings must be a positive number", http.StatusBadRequest)
				return
			}
			innings = n
		}
		card, err := s.Scorer.Scorecard(r.Context(), r.PathValue("id"), innings)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func (s *Server) DeliveriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deliveries, err := s.Scorer.Deliveries(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, deliveries)
	}
}

// ReportHandler serves the match report as a download.
func (s *Server) ReportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := report.Format(r.URL.Query().Get("format"))
		if format == "" {
			format = report.FormatText
		}
		doc, err := s.Scorer.Report(r.Context(), r.PathValue("id"), format)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", doc.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, doc.Body); err != nil {
			log.Error("Failed to write report", "error", err)
		}
	}
}
