package scorer

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/crease/internal/cricket"
	"github.com/mauv0809/crease/internal/metrics"
	"github.com/mauv0809/crease/internal/pubsub"
	"github.com/mauv0809/crease/internal/scorebook"
)

var (
	// ErrMatchNotFound is returned for IDs that are neither live nor stored.
	ErrMatchNotFound = errors.New("match not found")
	// ErrInningsNotFound is returned for scorecards of innings not yet played.
	ErrInningsNotFound = errors.New("innings not found")
)

// Scorer implements Service.
type Scorer struct {
	store    scorebook.Store
	counters metrics.CounterStore
	metrics  metrics.Metrics
	pubsub   pubsub.PubSubClient
	coin     cricket.Coin
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// session holds the live snapshot of one match. Its lock serializes writers.
// A deleted session rejects every later transition.
type session struct {
	mu      sync.Mutex
	state   cricket.MatchState
	deleted bool
}
