package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Events table - one row per gesture event accepted by the command mapper.
		// Timestamps are epoch seconds to match the event wire format.
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			time REAL NOT NULL,
			gesture TEXT NOT NULL,
			command TEXT NOT NULL,
			score REAL NOT NULL,
			session_id TEXT NOT NULL DEFAULT 'default',
			response_time REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - persisted runtime configuration as key-value pairs.
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Index for recency queries and retention cleanup.
		`CREATE INDEX IF NOT EXISTS idx_events_time ON events(time DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_events_gesture ON events(gesture)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
