package scorebook

import (
	"sync"

	"github.com/mauv0809/crease/internal/cricket"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	SaveMatchFunc      func(state cricket.MatchState) error
	RecordDeliveryFunc func(state cricket.MatchState, delivery Delivery) error
	GetMatchFunc       func(matchID string) (cricket.MatchState, error)
	GetAllMatchesFunc  func() ([]MatchSummary, error)
	GetDeliveriesFunc  func(matchID string) ([]Delivery, error)
	DeleteMatchFunc    func(matchID string) error
	ClearFunc          func()

	// Call records
	SaveMatchCalls      []cricket.MatchState
	RecordDeliveryCalls []struct {
		State    cricket.MatchState
		Delivery Delivery
	}
	GetMatchCalls    []string
	DeleteMatchCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) SaveMatch(state cricket.MatchState) error {
	m.mu.Lock()
	m.SaveMatchCalls = append(m.SaveMatchCalls, state)
	m.mu.Unlock()
	if m.SaveMatchFunc != nil {
		return m.SaveMatchFunc(state)
	}
	return nil
}

func (m *MockStore) RecordDelivery(state cricket.MatchState, delivery Delivery) error {
	m.mu.Lock()
	m.RecordDeliveryCalls = append(m.RecordDeliveryCalls, struct {
		State    cricket.MatchState
		Delivery Delivery
	}{state, delivery})
	m.mu.Unlock()
	if m.RecordDeliveryFunc != nil {
		return m.RecordDeliveryFunc(state, delivery)
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (cricket.MatchState, error) {
	m.mu.Lock()
	m.GetMatchCalls = append(m.GetMatchCalls, matchID)
	m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return cricket.MatchState{}, ErrNotFound
}

func (m *MockStore) GetAllMatches() ([]MatchSummary, error) {
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return []MatchSummary{}, nil
}

func (m *MockStore) GetDeliveries(matchID string) ([]Delivery, error) {
	if m.GetDeliveriesFunc != nil {
		return m.GetDeliveriesFunc(matchID)
	}
	return []Delivery{}, nil
}

func (m *MockStore) DeleteMatch(matchID string) error {
	m.mu.Lock()
	m.DeleteMatchCalls = append(m.DeleteMatchCalls, matchID)
	m.mu.Unlock()
	if m.DeleteMatchFunc != nil {
		return m.DeleteMatchFunc(matchID)
	}
	return nil
}

func (m *MockStore) Clear() {
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
