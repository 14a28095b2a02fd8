package localcache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Reserved slot keys. Record collections use the "records." prefix so they
// never collide with scalar slots.
const (
	slotToken      = "auth.token"
	slotTheme      = "ui.theme"
	recordsPrefix  = "records."
	defaultTheme   = "dark"
	busyTimeoutDSN = "?_busy_timeout=5000"
)

// Store is a durable key/value slot store backed by a single SQLite file.
// Each slot holds one JSON payload. Concurrent writers from separate
// processes resolve last-write-wins; the store does not version its slots.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens the cache file and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+busyTimeoutDSN)
	if err != nil {
		return nil, fmt.Errorf("opening cache at %s: %w", path, err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores payload under key, replacing any previous value.
func (s *Store) Put(key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO slots (key, payload, updated_at) VALUES (?, ?, ?)`,
		key, payload, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing cache slot %s: %w", key, err)
	}
	return nil
}

// Get returns the payload for key. The second return is false when the slot
// has never been written.
func (s *Store) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM slots WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache slot %s: %w", key, err)
	}
	return payload, true, nil
}

// Delete removes a slot. Deleting an absent slot is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting cache slot %s: %w", key, err)
	}
	return nil
}

// Token slot

func (s *Store) Token() (string, error) {
	payload, ok, err := s.Get(slotToken)
	if err != nil || !ok {
		return "", err
	}
	return string(payload), nil
}

func (s *Store) SetToken(token string) error {
	return s.Put(slotToken, []byte(token))
}

func (s *Store) ClearToken() error {
	return s.Delete(slotToken)
}

// Theme slot

func (s *Store) Theme() (string, error) {
	payload, ok, err := s.Get(slotTheme)
	if err != nil {
		return "", err
	}
	if !ok {
		return defaultTheme, nil
	}
	return string(payload), nil
}

func (s *Store) SetTheme(theme string) error {
	return s.Put(slotTheme, []byte(theme))
}

// Record collections

func recordsKey(kind string) string {
	return recordsPrefix + kind
}

// SaveRecords persists a whole collection for one entity kind as a single
// JSON payload, replacing whatever was cached before.
func SaveRecords[T any](s *Store, kind string, records []T) error {
	if records == nil {
		records = []T{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s records: %w", kind, err)
	}
	return s.Put(recordsKey(kind), payload)
}

// LoadRecords returns the cached collection for kind. The second return is
// false when nothing has been cached for that kind yet.
func LoadRecords[T any](s *Store, kind string) ([]T, bool, error) {
	payload, ok, err := s.Get(recordsKey(kind))
	if err != nil || !ok {
		return nil, false, err
	}
	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, false, fmt.Errorf("decoding %s records: %w", kind, err)
	}
	return records, true, nil
}

// ClearRecords drops the cached collection for kind.
func ClearRecords(s *Store, kind string) error {
	return s.Delete(recordsKey(kind))
}
