// Package session keeps the client's authentication state: a file-backed
// store surviving restarts and an in-memory manager owning the live session.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/awsomeshop/awsomeshop/internal/model"
)

const (
	sessionFile  = "session.json"
	languageFile = "language"
)

// Store persists the auth token, the last known user snapshot and the UI
// language under the user config dir. Every operation is synchronous and
// best-effort: storage failures are logged and the in-memory copy keeps
// serving for the rest of the process. No operation returns an error.
type Store struct {
	mu  sync.Mutex
	dir string
	log *slog.Logger

	token string
	user  *model.User
	lang  string
}

type persisted struct {
	Token string      `json:"token,omitempty"`
	User  *model.User `json:"user,omitempty"`
}

// DefaultDir resolves the config dir, honoring XDG_CONFIG_HOME.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "awsomeshop")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "awsomeshop")
}

func NewStore(dir string, l *slog.Logger) *Store {
	if l == nil {
		l = slog.Default()
	}
	s := &Store{dir: dir, log: l}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if err == nil {
		var p persisted
		if jsonErr := json.Unmarshal(data, &p); jsonErr != nil {
			s.log.Warn("session_file_corrupt", "error", jsonErr)
		} else {
			s.token = p.Token
			s.user = p.User
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("session_file_read_failed", "error", err)
	}

	// Token and user must be present together; a half-written session is
	// treated as no session at all.
	if s.token == "" || s.user == nil {
		s.token = ""
		s.user = nil
	}

	lang, err := os.ReadFile(filepath.Join(s.dir, languageFile))
	if err == nil {
		s.lang = strings.TrimSpace(string(lang))
	} else if !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("language_file_read_failed", "error", err)
	}
}

func (s *Store) save() {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		s.log.Warn("session_dir_create_failed", "error", err)
		return
	}
	data, err := json.Marshal(persisted{Token: s.token, User: s.user})
	if err != nil {
		s.log.Warn("session_marshal_failed", "error", err)
		return
	}
	if err := os.WriteFile(filepath.Join(s.dir, sessionFile), data, 0o600); err != nil {
		s.log.Warn("session_file_write_failed", "error", err)
	}
}

// SetSession stores token and user as one operation.
func (s *Store) SetSession(token string, user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	u := user
	s.user = &u
	s.save()
}

func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.save()
}

func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *Store) SetUser(user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := user
	s.user = &u
	s.save()
}

func (s *Store) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Clear drops token and user together. The language preference survives.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	if err := os.Remove(filepath.Join(s.dir, sessionFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("session_file_remove_failed", "error", err)
	}
}

func (s *Store) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		s.log.Warn("session_dir_create_failed", "error", err)
		return
	}
	if err := os.WriteFile(filepath.Join(s.dir, languageFile), []byte(lang), 0o600); err != nil {
		s.log.Warn("language_file_write_failed", "error", err)
	}
}

func (s *Store) Language() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang, s.lang != ""
}
