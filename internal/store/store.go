// Package store persists one project and its endpoints as a JSON file. It
// stands in for the document database of a full deployment: the CLI loads a
// project file, hands its contents to exporters or the validator, and merges
// importer candidates back in with (method, path) deduplication.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/apidoc-dev/apidoc/internal/model"
)

// File is the on-disk shape of a project store.
type File struct {
	Project   model.Project    `json:"project"`
	Endpoints []model.Endpoint `json:"endpoints"`
}

// Store guards a project file for in-process use.
type Store struct {
	path string

	mu   sync.RWMutex
	data File
}

// Open loads the store at path. A missing file yields an empty store with a
// default project, so a first import can bootstrap a new file.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		s.data.Project = model.Project{Name: "Untitled API", Version: model.DefaultVersion}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", path, err)
	}
	return s, nil
}

// Project returns a copy of the stored project.
func (s *Store) Project() model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Project
}

// SetProject replaces the stored project.
func (s *Store) SetProject(p model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Project = p
}

// Endpoints returns the endpoints sorted by Order (stable, so endpoints
// sharing an Order keep insertion order).
func (s *Store) Endpoints() []model.Endpoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]model.Endpoint(nil), s.data.Endpoints...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Merge applies an importer's output: the project patch (when present) and
// every candidate whose (method, path) key is not already stored. It returns
// how many candidates were inserted and how many were skipped as duplicates.
func (s *Store) Merge(patch *model.ProjectPatch, candidates []model.Endpoint) (imported, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Project.Apply(patch)

	existing := make(map[string]struct{}, len(s.data.Endpoints))
	nextOrder := 0
	for i := range s.data.Endpoints {
		existing[s.data.Endpoints[i].Key()] = struct{}{}
		if s.data.Endpoints[i].Order >= nextOrder {
			nextOrder = s.data.Endpoints[i].Order + 1
		}
	}

	for _, candidate := range candidates {
		if _, dup := existing[candidate.Key()]; dup {
			skipped++
			continue
		}
		candidate.Order = nextOrder
		nextOrder++
		existing[candidate.Key()] = struct{}{}
		s.data.Endpoints = append(s.data.Endpoints, candidate)
		imported++
	}
	return imported, skipped
}

// Save writes the store atomically via a temp file and rename.
func (s *Store) Save() error {
	s.mu.RLock()
	out, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	out = append(out, '\n')

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("store: rename %s: %w", s.path, err)
	}
	return nil
}
