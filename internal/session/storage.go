package session

import (
	"os"
	"path/filepath"
	"strings"
)

// FileTokenStore persists the bearer token in a local credentials file. It
// satisfies the API client's TokenSource.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore builds a store around the configured credentials file.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Token reads the stored token, "" when absent.
func (s *FileTokenStore) Token() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save writes the token, creating parent directories as needed. The file is
// user-readable only.
func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

// Clear removes the stored token. Missing file is not an error.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
