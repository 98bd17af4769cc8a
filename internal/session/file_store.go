package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"projectboard/internal/model"
)

// FileStore keeps the session in a JSON file with two string entries,
// "token" and "user" (the user serialized as JSON), mirroring the two
// origin-scoped entries the browser client kept.
type FileStore struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
}

func NewFileStore(path string, logger *zap.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// DefaultPath returns the per-user session file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "projectboard", "session.json"), nil
}

func (s *FileStore) Token(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	token, ok := entries[tokenKey]
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func (s *FileStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	entries[tokenKey] = token
	return s.write(entries)
}

func (s *FileStore) User(ctx context.Context) (*model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	raw, ok := entries[userKey]
	if !ok || raw == "" {
		return nil, false
	}

	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		// Malformed stored user counts as "no profile", not a failure.
		s.logger.Warn("Failed to parse stored user", zap.Error(err))
		return nil, false
	}
	return &u, true
}

func (s *FileStore) SetUser(ctx context.Context, u *model.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	entries[userKey] = string(raw)
	return s.write(entries)
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) read() map[string]string {
	entries := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		s.logger.Warn("Session file unreadable, treating as empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return make(map[string]string)
	}
	return entries
}

func (s *FileStore) write(entries map[string]string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
