package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/scorer"
	"github.com/slack-go/slack"
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg slack.Message) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(msg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// ScoreCommandHandler returns a handler for the /score Slack command. The text
// is a match ID; without one the most recently updated match is shown.
func (s *Server) ScoreCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cmd, err := slack.SlashCommandParse(r)
		if err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		query := strings.TrimSpace(cmd.Text)
		log.Info("Received score command", "user", cmd.UserName, "query", query)

		matchID := query
		if matchID == "" {
			matches, err := s.Scorer.ListMatches(r.Context())
			if err != nil {
				http.Error(w, "Failed to list matches", http.StatusInternalServerError)
				log.Error("Failed to list matches", "error", err)
				return
			}
			if len(matches) > 0 {
				matchID = matches[0].ID
			}
		}

		var msg any
		state, err := s.Scorer.Match(r.Context(), matchID)
		switch {
		case errors.Is(err, scorer.ErrMatchNotFound) || matchID == "":
			log.Warn("Could not find match for score command", "query", query)
			msg, err = s.Notifier.FormatMatchNotFoundResponse(query)
		case err != nil:
			http.Error(w, "Failed to load match", http.StatusInternalServerError)
			log.Error("Failed to load match", "error", err, "matchID", matchID)
			return
		default:
			msg, err = s.Notifier.FormatScoreResponse(state)
		}
		if err != nil {
			http.Error(w, "Failed to format score", http.StatusInternalServerError)
			log.Error("Failed to format score", "error", err)
			return
		}

		slackMsg, ok := msg.(slack.Message)
		if !ok {
			http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
			log.Error("Failed to cast message to slack.Message")
			return
		}
		respondWithSlackMsg(w, slackMsg)
	}
}
