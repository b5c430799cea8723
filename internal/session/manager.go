package session

import (
	"sync"

	"github.com/awsomeshop/awsomeshop/internal/model"
)

// Manager owns the in-memory session for the life of the process. It is
// constructed once at startup, hydrated from the Store without a backend
// call, and passed explicitly to the router and the pages.
type Manager struct {
	mu    sync.Mutex
	store *Store
	token string
	user  *model.User
}

func NewManager(store *Store) *Manager {
	m := &Manager{store: store}
	tok, okT := store.Token()
	usr, okU := store.User()
	if okT && okU {
		m.token = tok
		m.user = &usr
	}
	return m
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != "" && m.user != nil
}

func (m *Manager) User() (model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return model.User{}, false
	}
	return *m.user, true
}

func (m *Manager) Role() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return ""
	}
	return m.user.Role
}

// Login writes the session through to the Store and updates memory in one
// step; callers never observe a half-applied session.
func (m *Manager) Login(token string, user model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.SetSession(token, user)
	m.token = token
	u := user
	m.user = &u
}

// Logout clears store and memory. Safe to call when already logged out.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store.Clear()
	m.token = ""
	m.user = nil
}

// UpdateUser merges the non-nil patch fields into the cached user and writes
// the snapshot back to the Store. It never calls the backend; the change is
// expected to have been persisted server-side already. Returns the merged
// user, or false when no session is active.
func (m *Manager) UpdateUser(patch model.UserPatch) (model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return model.User{}, false
	}
	merged := patch.Apply(*m.user)
	m.user = &merged
	m.store.SetUser(merged)
	return merged, true
}
