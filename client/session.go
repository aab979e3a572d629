package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Session is the locally persisted proof of login: which account is active,
// its role, and the raw token the server issued.
type Session struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

func (s Session) LoggedIn() bool { return s.Token != "" }

// SessionStore keeps the session in memory and mirrors every change to a JSON
// file so a restarted CLI picks up where it left off. Interested parties
// subscribe to be told about login/logout without polling.
type SessionStore struct {
	mu      sync.Mutex
	path    string
	current Session
	subs    []func(Session)
}

// NewSessionStore loads any previously persisted session from path. A missing
// or unreadable file just means a logged-out store.
func NewSessionStore(path string) *SessionStore {
	st := &SessionStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		return st
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// Corrupt session file: discard it rather than fail startup.
		_ = os.Remove(path)
		return st
	}
	st.current = s
	return st
}

func (st *SessionStore) Current() Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current
}

// Subscribe registers fn to be called after every session change. fn runs
// synchronously on the mutating goroutine.
func (st *SessionStore) Subscribe(fn func(Session)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.subs = append(st.subs, fn)
}

// Set replaces the session, persists it, and notifies subscribers.
func (st *SessionStore) Set(s Session) error {
	st.mu.Lock()
	st.current = s
	err := st.persistLocked()
	subs := append([]func(Session){}, st.subs...)
	st.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
	return err
}

// Clear logs out: wipes the session, removes the file, notifies subscribers.
func (st *SessionStore) Clear() error {
	st.mu.Lock()
	st.current = Session{}
	err := os.Remove(st.path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		err = nil
	}
	subs := append([]func(Session){}, st.subs...)
	st.mu.Unlock()

	for _, fn := range subs {
		fn(Session{})
	}
	return err
}

func (st *SessionStore) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(st.current)
	if err != nil {
		return err
	}
	return os.WriteFile(st.path, data, 0o600)
}
