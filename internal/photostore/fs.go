package photostore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FSStore keeps photo records on the local filesystem, one JSON document per
// equipment id under the root directory. Writes go through a temp file and a
// rename so readers never see a half-written document.
type FSStore struct {
	mu   sync.Mutex
	root string
}

// NewFSStore returns a filesystem-backed photo store rooted at path,
// creating the directory if needed.
func NewFSStore(root string) (*FSStore, error) {
	if root == "" {
		root = "./photodata"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{root: root}, nil
}

func (s *FSStore) pathFor(equipmentID string) (string, error) {
	id := strings.TrimSpace(equipmentID)
	if id == "" {
		return "", fmt.Errorf("empty equipment id")
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return "", fmt.Errorf("invalid equipment id %q", equipmentID)
	}
	return filepath.Join(s.root, id+".json"), nil
}

// Append adds photo records for the given equipment id.
func (s *FSStore) Append(ctx context.Context, equipmentID string, photos []Photo) error {
	path, err := s.pathFor(equipmentID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.readLocked(path)
	if err != nil {
		return err
	}
	existing = append(existing, photos...)

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// List returns the photo records stored for the given equipment id in append
// order.
func (s *FSStore) List(ctx context.Context, equipmentID string) ([]Photo, error) {
	path, err := s.pathFor(equipmentID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readLocked(path)
}

func (s *FSStore) readLocked(path string) ([]Photo, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Photo{}, nil
	}
	if err != nil {
		return nil, err
	}

	var photos []Photo
	if err := json.Unmarshal(data, &photos); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return photos, nil
}
