package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS session_store (
	session_id TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (session_id, key)
)`

// SQLiteParams holds configuration for opening a SQLite store.
type SQLiteParams struct {
	Path string
	// SessionID scopes every row. Empty generates a fresh session.
	SessionID string
	Logger    *zap.Logger
}

// SQLite is a Store persisted in a SQLite file and scoped to one session.
// Opening a new session discards rows left behind by earlier ones.
type SQLite struct {
	db        *sql.DB
	sessionID string
	log       *zap.Logger
}

// OpenSQLite opens (creating if needed) the database at p.Path.
func OpenSQLite(p SQLiteParams) (*SQLite, error) {
	if p.Path == "" {
		return nil, errors.New("sqlite store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	db, err := sql.Open("sqlite", p.Path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", p.Path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating store schema: %w", err)
	}

	session := p.SessionID
	if session == "" {
		session = uuid.NewString()
	}
	if _, err := db.Exec(`DELETE FROM session_store WHERE session_id <> ?`, session); err != nil {
		db.Close()
		return nil, fmt.Errorf("purging old sessions: %w", err)
	}

	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &SQLite{db: db, sessionID: session, log: log.Named("store")}, nil
}

// SessionID returns the session this store is scoped to.
func (s *SQLite) SessionID() string {
	return s.sessionID
}

func (s *SQLite) Read(key string) (string, bool) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM session_store WHERE session_id = ? AND key = ?`, s.sessionID, key).Scan(&v)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("read failed", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return v, true
}

func (s *SQLite) Write(key, value string) {
	_, err := s.db.Exec(`INSERT INTO session_store (session_id, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.sessionID, key, value, time.Now().UnixMilli())
	if err != nil {
		s.log.Warn("write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *SQLite) Remove(key string) {
	if _, err := s.db.Exec(`DELETE FROM session_store WHERE session_id = ? AND key = ?`, s.sessionID, key); err != nil {
		s.log.Warn("remove failed", zap.String("key", key), zap.Error(err))
	}
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
