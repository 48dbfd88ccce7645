package store

import (
	"sync"

	"golang.org/x/crypto/bcrypt"

	"onlineshop/internal/kv"
	"onlineshop/internal/notify"
)

const (
	adminAuthKey = "adminAuth"
	adminUserKey = "adminUser"

	// Single hardcoded credential pair. A known weakness kept for parity
	// with the original console; swapping in a real identity provider is
	// out of scope here.
	adminUsername = "onlineshop@admin"
	adminPassword = "password"
)

// Session owns the admin authentication flag and username. State rehydrates
// from storage without verification: whatever the keys say at startup is
// trusted, no expiry, no token.
type Session struct {
	kv      *kv.Store
	notices notify.Sink
	hash    []byte

	mu            sync.Mutex
	authenticated bool
	adminUser     string
}

func NewSession(store *kv.Store, notices notify.Sink) (*Session, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	s := &Session{kv: store, notices: notices, hash: hash}

	flag, ok, err := store.Get(adminAuthKey)
	if err != nil {
		return nil, err
	}
	s.authenticated = ok && flag == "true"
	if user, ok, err := store.Get(adminUserKey); err != nil {
		return nil, err
	} else if ok {
		s.adminUser = user
	}
	return s, nil
}

// Login compares against the hardcoded pair. On success the session is set
// and persisted; on failure prior state is left untouched.
func (s *Session) Login(username, password string) bool {
	if username != adminUsername || bcrypt.CompareHashAndPassword(s.hash, []byte(password)) != nil {
		s.notices.Push(notify.Error, "Invalid username or password")
		return false
	}

	s.mu.Lock()
	s.authenticated = true
	s.adminUser = username
	s.mu.Unlock()

	_ = s.kv.Set(adminAuthKey, "true")
	_ = s.kv.Set(adminUserKey, username)
	s.notices.Push(notify.Success, "Successfully logged in as admin")
	return true
}

// Logout clears in-memory and persisted session state unconditionally.
func (s *Session) Logout() {
	s.mu.Lock()
	s.authenticated = false
	s.adminUser = ""
	s.mu.Unlock()

	_ = s.kv.Delete(adminAuthKey)
	_ = s.kv.Delete(adminUserKey)
	s.notices.Push(notify.Info, "Logged out from admin panel")
}

func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

func (s *Session) AdminUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminUser
}
