package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesCreated()
	IncBallsRecorded()
	IncWickets()
	IncTransitionsRejected(operation string)
	ObserveTransitionDuration(operation string, duration float64)
	IncEventsPublished(topic string)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}

// CounterStore keeps the lifetime match totals that survive restarts.
type CounterStore interface {
	Increment(key string) error
	GetAll() (map[string]int, error)
}

// Keys used with CounterStore.
const (
	KeyMatchesCreated = "matches_created"
	KeyBallsRecorded  = "balls_recorded"
	KeyWickets        = "wickets"
	KeyInningsPlayed  = "innings_completed"
)

// CounterKeys lists every lifetime total a CounterStore accepts.
var CounterKeys = []string{KeyMatchesCreated, KeyBallsRecorded, KeyWickets, KeyInningsPlayed}
