package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// FirstTimeUserKey marks whether onboarding has run
const FirstTimeUserKey = "firstTimeUser"

// Get returns the raw value stored under key
func (db *DB) Get(key string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

// Put stores a raw value under key, replacing any previous value
func (db *DB) Put(key, value string) error {
	return put(db.DB, key, value)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func put(e execer, key, value string) error {
	_, err := e.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (db *DB) Delete(key string) error {
	if _, err := db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Keys returns every stored key in order
func (db *DB) Keys() ([]string, error) {
	rows, err := db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Save encodes v as JSON and stores it under key
func (db *DB) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return db.Put(key, string(data))
}

// SaveAll stores several values in one transaction
func (db *DB) SaveAll(values map[string]any) error {
	encoded := make(map[string]string, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %q: %w", key, err)
		}
		encoded[key] = string(data)
	}
	return db.Transaction(func(tx *sql.Tx) error {
		for key, value := range encoded {
			if err := put(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load decodes the value under key into v and reports whether it was found.
// A malformed value is logged and reported as missing; v may then hold a
// partial decode and should be reset by the caller.
func (db *DB) Load(key string, v any) (bool, error) {
	raw, ok, err := db.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		db.logger.Warn("ignoring malformed stored value", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// FirstTimeUser reports whether onboarding has not run yet
func (db *DB) FirstTimeUser() (bool, error) {
	var seen bool
	ok, err := db.Load(FirstTimeUserKey, &seen)
	if err != nil {
		return false, err
	}
	// Stored as "false" once onboarding is done
	return !ok || seen, nil
}

// MarkOnboarded records that onboarding has run
func (db *DB) MarkOnboarded() error {
	return db.Save(FirstTimeUserKey, false)
}
