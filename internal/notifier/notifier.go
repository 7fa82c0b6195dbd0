package notifier

import (
	"github.com/mauv0809/crease/internal/cricket"
	"github.com/mauv0809/crease/internal/scorer"
)

// Notifier defines a high-level interface for sending notifications about match events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For events pushed from Pub/Sub
	SendWicketNotification(event scorer.WicketFallen, dryRun bool) error
	SendInningsNotification(event scorer.InningsSwitched, dryRun bool) error

	// For formatting responses for slash commands
	FormatScoreResponse(state cricket.MatchState) (any, error)
	FormatMatchNotFoundResponse(query string) (any, error)
}
