package notifier

import (
	"sync"

	"github.com/mauv0809/crease/internal/cricket"
	"github.com/mauv0809/crease/internal/scorer"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendWicketNotificationFunc  func(event scorer.WicketFallen, dryRun bool) error
	SendInningsNotificationFunc func(event scorer.InningsSwitched, dryRun bool) error
	FormatScoreResponseFunc     func(state cricket.MatchState) (any, error)
	FormatMatchNotFoundFunc     func(query string) (any, error)

	// Call records
	SendWicketNotificationCalls []struct {
		Event  scorer.WicketFallen
		DryRun bool
	}
	SendInningsNotificationCalls []struct {
		Event  scorer.InningsSwitched
		DryRun bool
	}
	FormatScoreResponseCalls         []cricket.MatchState
	FormatMatchNotFoundResponseCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendWicketNotificationCalls = nil
	m.SendInningsNotificationCalls = nil
	m.FormatScoreResponseCalls = nil
	m.FormatMatchNotFoundResponseCalls = nil
}

func (m *Mock) SendWicketNotification(event scorer.WicketFallen, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendWicketNotificationCalls = append(m.SendWicketNotificationCalls, struct {
		Event  scorer.WicketFallen
		DryRun bool
	}{event, dryRun})
	if m.SendWicketNotificationFunc != nil {
		return m.SendWicketNotificationFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) SendInningsNotification(event scorer.InningsSwitched, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendInningsNotificationCalls = append(m.SendInningsNotificationCalls, struct {
		Event  scorer.InningsSwitched
		DryRun bool
	}{event, dryRun})
	if m.SendInningsNotificationFunc != nil {
		return m.SendInningsNotificationFunc(event, dryRun)
	}
	return nil
}

func (m *Mock) FormatScoreResponse(state cricket.MatchState) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatScoreResponseCalls = append(m.FormatScoreResponseCalls, state)
	if m.FormatScoreResponseFunc != nil {
		return m.FormatScoreResponseFunc(state)
	}
	return "formatted_score", nil
}

func (m *Mock) FormatMatchNotFoundResponse(query string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FormatMatchNotFoundResponseCalls = append(m.FormatMatchNotFoundResponseCalls, query)
	if m.FormatMatchNotFoundFunc != nil {
		return m.FormatMatchNotFoundFunc(query)
	}
	return "formatted_not_found", nil
}
