package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"swiftcourier-console/internal/logx"
)

// Store keeps sessions in memory and mirrors them to a JSON file so a
// console restart does not sign everyone out. The file is the only durable
// state the console owns; everything else lives in the backend.
type Store struct {
	mu       sync.RWMutex
	path     string
	ttl      time.Duration
	logger   logx.Logger
	sessions map[string]Session
}

// NewStore creates a store persisted at path. An empty path keeps sessions
// in memory only. Existing sessions are loaded eagerly; expired ones are
// dropped on load and on read.
func NewStore(path string, ttl time.Duration, logger logx.Logger) (*Store, error) {
	if logger == nil {
		logger = logx.Nop()
	}
	s := &Store{
		path:     path,
		ttl:      ttl,
		logger:   logger,
		sessions: make(map[string]Session),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	if s.path == "" {
		return nil
	}
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session store: read %s: %w", s.path, err)
	}
	var sessions map[string]Session
	if err := json.Unmarshal(raw, &sessions); err != nil {
		// a broken file must not prevent startup
		s.logger.Warn("session store: discarding corrupt file",
			logx.String("path", s.path), logx.Err(err))
		return nil
	}
	now := time.Now()
	for id, sess := range sessions {
		if s.expired(sess, now) {
			continue
		}
		s.sessions[id] = sess
	}
	s.logger.Info("session store loaded", logx.Int("sessions", len(s.sessions)))
	return nil
}

func (s *Store) expired(sess Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.CreatedAt) > s.ttl
}

// Get returns a copy of the session with the given id. An expired session
// is removed right away so it does not linger in memory or in the file.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if s.expired(sess, time.Now()) {
		delete(s.sessions, id)
		s.flushLocked()
		return Session{}, false
	}
	return sess, true
}

// Put inserts or replaces a session and flushes to disk.
func (s *Store) Put(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	s.flushLocked()
}

// Delete removes a session. It reports whether the session existed, so
// callers can act exactly once on the first teardown.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, existed := s.sessions[id]
	if existed {
		delete(s.sessions, id)
		s.flushLocked()
	}
	return existed
}

// Close flushes the store a final time.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked()
	return nil
}

// flushLocked writes the session file atomically (temp file + rename).
// Callers must hold s.mu.
func (s *Store) flushLocked() {
	if s.path == "" {
		return
	}
	raw, err := json.MarshalIndent(s.sessions, "", "  ")
	if err != nil {
		s.logger.Error("session store: encode failed", logx.Err(err))
		return
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.logger.Error("session store: mkdir failed", logx.Err(err))
		return
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		s.logger.Error("session store: write failed", logx.Err(err))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Error("session store: rename failed", logx.Err(err))
	}
}
