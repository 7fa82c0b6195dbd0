package metrics

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrUnknownCounter is returned for keys outside CounterKeys.
var ErrUnknownCounter = errors.New("unknown counter")

// store keeps the lifetime match totals in the metrics table.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// NewCounterStore creates a CounterStore backed by db.
func NewCounterStore(db *sql.DB) CounterStore {
	return &store{db: db}
}

// Increment bumps one lifetime total. A failed write is returned so the caller
// can report the lost count; the match itself is already saved by then.
func (s *store) Increment(key string) error {
	if !slices.Contains(CounterKeys, key) {
		return fmt.Errorf("%w: %q", ErrUnknownCounter, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`
		INSERT INTO metrics (key, value) VALUES (?, 1)
		ON CONFLICT(key) DO UPDATE SET value = value + 1;
	`, key); err != nil {
		return fmt.Errorf("failed to increment %s: %w", key, err)
	}
	log.Debug("Incremented lifetime total", "key", key)
	return nil
}

// GetAll returns every lifetime total. Totals never written read as zero.
func (s *store) GetAll() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query("SELECT key, value FROM metrics")
	if err != nil {
		return nil, fmt.Errorf("failed to read lifetime totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int, len(CounterKeys))
	for _, key := range CounterKeys {
		totals[key] = 0
	}
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		totals[key] = value
	}
	return totals, rows.Err()
}
