package scorebook

import "github.com/mauv0809/crease/internal/cricket"

// Store persists match snapshots and the delivery log.
type Store interface {
	SaveMatch(state cricket.MatchState) error
	RecordDelivery(state cricket.MatchState, delivery Delivery) error
	GetMatch(matchID string) (cricket.MatchState, error)
	GetAllMatches() ([]MatchSummary, error)
	GetDeliveries(matchID string) ([]Delivery, error)
	DeleteMatch(matchID string) error
	Clear()
}
