// Package session holds the storefront's authentication state as an explicit
// object handed to the view layer, instead of ambient application-wide state.
// It is initialized on session start and reset on logout.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const sessionFile = "session.json"

// Session is the login-to-logout span. It persists in the state directory so
// the span survives process restarts, the way a browser session survives page
// navigations. HasSynced is only set after a full reconciliation pass, so an
// interrupted pass retries on the next start (at-least-once).
type Session struct {
	path string
	log  zerolog.Logger
	data data
}

type data struct {
	UserID    string `json:"userId,omitempty"`
	HasSynced bool   `json:"hasSynced,omitempty"`
}

// Open loads the persisted session, starting anonymous on a missing or
// undecodable file.
func Open(stateDir string, log zerolog.Logger) *Session {
	s := &Session{
		path: filepath.Join(stateDir, sessionFile),
		log:  log.With().Str("component", "session").Logger(),
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("read session")
		}
		return s
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("decode session, starting anonymous")
		s.data = data{}
	}
	return s
}

func (s *Session) Authenticated() bool { return s.data.UserID != "" }
func (s *Session) UserID() string      { return s.data.UserID }
func (s *Session) HasSynced() bool     { return s.data.HasSynced }

// Login starts an authenticated session for userID with the sync flag
// cleared, arming reconciliation.
func (s *Session) Login(userID string) {
	s.data = data{UserID: userID}
	s.persist()
}

// MarkSynced records that the reconciliation pass completed for this session.
func (s *Session) MarkSynced() {
	s.data.HasSynced = true
	s.persist()
}

// Logout returns to an anonymous session, re-arming reconciliation for the
// next login.
func (s *Session) Logout() {
	s.data = data{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", s.path).Msg("clear session")
	}
}

func (s *Session) persist() {
	raw, err := json.Marshal(s.data)
	if err != nil {
		s.log.Warn().Err(err).Msg("encode session")
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("create state dir")
		return
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("write session")
	}
}
