package store

import (
	"database/sql"
	"encoding/json"
	"errors"
)

// Well-known settings keys.
const (
	SettingRecognition = "recognition_config"
	SettingMapping     = "gesture_mapping"
)

// SettingsRepository provides key-value access to persisted settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get returns the value for a key, or ErrNotFound.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores a value for a key, replacing any existing value.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// GetJSON unmarshals the value for a key into v.
func (r *SettingsRepository) GetJSON(key string, v any) error {
	raw, err := r.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), v)
}

// SetJSON marshals v and stores it under key.
func (r *SettingsRepository) SetJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.Set(key, string(raw))
}
