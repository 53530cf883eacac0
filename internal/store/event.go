package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Event is one accepted gesture event.
type Event struct {
	ID           int64   `json:"id"`
	Time         float64 `json:"time"` // epoch seconds
	Gesture      string  `json:"gesture"`
	Command      string  `json:"command"`
	Score        float64 `json:"score"`
	SessionID    string  `json:"session_id"`
	ResponseTime float64 `json:"response_time"` // milliseconds
	CreatedAt    time.Time
}

// EventRepository provides operations on the event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert appends an event to the log.
func (r *EventRepository) Insert(e *Event) error {
	sessionID := e.SessionID
	if sessionID == "" {
		sessionID = "default"
	}

	res, err := r.db.Exec(
		`INSERT INTO events (time, gesture, command, score, session_id, response_time)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Time, e.Gesture, e.Command, e.Score, sessionID, e.ResponseTime,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = id
	e.SessionID = sessionID
	return nil
}

// Recent returns up to limit events, newest first.
func (r *EventRepository) Recent(limit int) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT id, time, gesture, command, score, session_id, response_time
		 FROM events ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Time, &e.Gesture, &e.Command, &e.Score, &e.SessionID, &e.ResponseTime); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Count returns the total number of logged events.
func (r *EventRepository) Count() (int64, error) {
	var n int64
	err := r.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n)
	return n, err
}

// DeleteBefore removes events older than the cutoff (epoch seconds) and
// returns how many were deleted. Used by retention cleanup.
func (r *EventRepository) DeleteBefore(cutoff float64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM events WHERE time < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ScoresByGesture returns every logged score grouped by gesture name, the
// raw material for the analytics summary.
func (r *EventRepository) ScoresByGesture() (map[string][]float64, error) {
	rows, err := r.db.Query(`SELECT gesture, score FROM events`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make(map[string][]float64)
	for rows.Next() {
		var gesture string
		var score float64
		if err := rows.Scan(&gesture, &score); err != nil {
			return nil, err
		}
		scores[gesture] = append(scores[gesture], score)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}
