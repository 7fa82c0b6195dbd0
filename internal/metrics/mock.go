package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	matchesCreated      int
	ballsRecorded       int
	wickets             int
	rejected            map[string]int
	transitionDurations map[string][]float64
	eventsPublished     map[string]int
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rejected:            make(map[string]int),
		transitionDurations: make(map[string][]float64),
		eventsPublished:     make(map[string]int),
	}
}

func (m *Mock) IncMatchesCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCreated++
}

func (m *Mock) IncBallsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ballsRecorded++
}

func (m *Mock) IncWickets() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wickets++
}

func (m *Mock) IncTransitionsRejected(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[operation]++
}

func (m *Mock) ObserveTransitionDuration(operation string, duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitionDurations[operation] = append(m.transitionDurations[operation], duration)
}

func (m *Mock) IncEventsPublished(topic string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsPublished[topic]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesCreated returns the number of times IncMatchesCreated was called.
func (m *Mock) MatchesCreated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCreated
}

// BallsRecorded returns the number of times IncBallsRecorded was called.
func (m *Mock) BallsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ballsRecorded
}

// Wickets returns the number of times IncWickets was called.
func (m *Mock) Wickets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wickets
}

// TransitionsRejected returns how often the operation was rejected.
func (m *Mock) TransitionsRejected(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rejected[operation]
}

// TransitionObservations returns how many durations were observed for the operation.
func (m *Mock) TransitionObservations(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transitionDurations[operation])
}

// EventsPublished returns how many events were published to the topic.
func (m *Mock) EventsPublished(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsPublished[topic]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// MockCounterStore is an in-memory CounterStore.
type MockCounterStore struct {
	mu       sync.Mutex
	counters map[string]int

	IncrementFunc func(key string) error
}

// NewMockCounterStore creates an empty in-memory counter store.
func NewMockCounterStore() *MockCounterStore {
	return &MockCounterStore{counters: make(map[string]int)}
}

func (m *MockCounterStore) Increment(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IncrementFunc != nil {
		if err := m.IncrementFunc(key); err != nil {
			return err
		}
	}
	m.counters[key]++
	return nil
}

func (m *MockCounterStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.counters))
	for k, v := range m.counters {
		out[k] = v
	}
	return out, nil
}
