package speech

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirStore stores synthesized audio files in a local directory and returns
// references relative to a public base URL.
type DirStore struct {
	directory string
	baseURL   string
}

// NewDirStore creates a new DirStore.
func NewDirStore(directory, baseURL string) *DirStore {
	return &DirStore{directory: directory, baseURL: baseURL}
}

// Save writes the audio bytes and returns the public reference.
func (s *DirStore) Save(_ context.Context, name string, mp3 []byte) (string, error) {
	if err := os.MkdirAll(s.directory, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", s.directory, err)
	}
	path := filepath.Join(s.directory, name)
	if err := os.WriteFile(path, mp3, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return s.baseURL + "/" + name, nil
}
