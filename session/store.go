package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/starose-admin/internal/errors"
	"github.com/rs/zerolog"
)

// Store is the single owner of the session record for the lifetime of the process.
// It is either anonymous or holds one session; the slot in Storage is only written by
// Login, Logout and the start-up restore.
type Store struct {
	storage   Storage
	nowTime   func() time.Time
	log       zerolog.Logger
	mu        sync.RWMutex
	current   *Session
	expiresAt time.Time
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithLogger sets the logger used for restore and logout diagnostics
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = logger
	}
}

// NewStore creates the store and restores any persisted session. A stored record that is
// expired, unreadable or carries an undecodable token is removed and the store starts
// anonymous.
func NewStore(storage Storage, options ...StoreOption) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("[session.NewStore] storage is required: %w", apperrors.ErrMissingDependency)
	}

	s := &Store{
		storage: storage,
		nowTime: time.Now,
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(s)
	}

	s.restore()
	return s, nil
}

func (s *Store) restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.storage.Get(StorageKey)
	if err != nil {
		s.log.Warn().Err(err).Msg("Stored session unreadable, starting anonymous")
		s.discardLocked()
		return
	}
	if !ok {
		return
	}

	var stored Session
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Warn().Err(err).Msg("Stored session malformed, clearing")
		s.discardLocked()
		return
	}

	expiresAt, err := TokenExpiry(stored.Token)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", stored.ID).Msg("Stored session token cannot be validated, clearing")
		s.discardLocked()
		return
	}

	if !expiresAt.After(s.nowTime()) {
		s.log.Info().Str("user_id", stored.ID).Time("expired_at", expiresAt).Msg("Stored session expired, clearing")
		s.discardLocked()
		return
	}

	s.current = &stored
	s.expiresAt = expiresAt
	s.log.Debug().Str("user_id", stored.ID).Time("expires_at", expiresAt).Msg("Session restored")
}

// discardLocked clears the slot and the in-memory state. Caller holds mu.
func (s *Store) discardLocked() {
	if err := s.storage.Remove(StorageKey); err != nil {
		s.log.Error().Err(err).Msg("Failed to remove stored session")
	}
	s.current = nil
	s.expiresAt = time.Time{}
}

// Login persists the session and makes it current. The record is written to storage before
// the in-memory state changes, so a failed write leaves the store as it was.
func (s *Store) Login(session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	// Expiry is informational here; it is only enforced on the next start-up.
	expiresAt, err := TokenExpiry(session.Token)
	if err != nil {
		s.log.Debug().Err(err).Str("user_id", session.ID).Msg("Login token has no decodable expiry")
	}

	s.current = &session
	s.expiresAt = expiresAt
	return nil
}

// Logout clears the session. It is safe to call when anonymous. The in-memory state is
// always cleared; a storage failure is still reported to the caller.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.storage.Remove(StorageKey)
	s.current = nil
	s.expiresAt = time.Time{}
	if err != nil {
		return fmt.Errorf("remove stored session: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether a session is held.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// CurrentUser returns a copy of the current session.
func (s *Store) CurrentUser() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// ExpiresAt is the decoded token expiry of the current session, zero when anonymous or
// when the token carried no decodable expiry.
func (s *Store) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}
