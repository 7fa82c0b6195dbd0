package http

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/scorer"
)

// decodePush unwraps a Pub/Sub push request into v. It writes the error
// response itself and reports whether the handler should continue.
func (s *Server) decodePush(w http.ResponseWriter, r *http.Request, v any) bool {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return false
	}
	loggerFromContext(r).Debug("Received push message", "url", r.URL.Path, "body", string(bodyBytes))

	var pubsubMsg pushRequest
	if err := json.Unmarshal(bodyBytes, &pubsubMsg); err != nil {
		log.Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}

	rawData, err := base64.StdEncoding.DecodeString(pubsubMsg.Message.Data)
	if err != nil {
		log.Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return false
	}
	if err := s.pubsub.ProcessMessage(rawData, v); err != nil {
		log.Error("Failed to decode push payload", "error", err, "messageID", pubsubMsg.Message.MessageID)
		http.Error(w, "Invalid message payload", http.StatusBadRequest)
		return false
	}
	return true
}

// WicketFallenHandler receives wicket-fallen events and posts them to Slack.
func (s *Server) WicketFallenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event scorer.WicketFallen
		if !s.decodePush(w, r, &event) {
			return
		}
		if err := s.Notifier.SendWicketNotification(event, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify wicket", "error", err, "matchID", event.MatchID)
			http.Error(w, "Failed to notify wicket", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// InningsSwitchedHandler receives innings-switched events and posts them to Slack.
func (s *Server) InningsSwitchedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var event scorer.InningsSwitched
		if !s.decodePush(w, r, &event) {
			return
		}
		if err := s.Notifier.SendInningsNotification(event, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to notify innings change", "error", err, "matchID", event.MatchID)
			http.Error(w, "Failed to notify innings change", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
