package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/elenamtz/nubegen/pkg/apperr"
)

// DefaultStoreFilename is the snapshot file name under the config directory.
const DefaultStoreFilename = "saved_configs.json"

// Snapshot is a named, persisted copy of a full configuration. Names are
// unique by convention only; duplicates form multiple entries and lookups
// return the first match.
type Snapshot struct {
	Name   string        `json:"name"`
	Config Configuration `json:"config"`
}

// Store persists named snapshots as a JSON array in a single flat file.
//
// The file is accessed without cross-process locking; concurrent writers
// race with last-write-wins semantics, which is acceptable for a local
// single-user tool. In-process access is serialized by a mutex.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads all snapshots. An absent file, unreadable file, or file whose
// contents are not a JSON array yields an empty slice — never an error. The
// store recovers silently so a corrupted file can't wedge the dashboard.
func (s *Store) Load() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []Snapshot{}
	}
	var snapshots []Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return []Snapshot{}
	}
	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	return snapshots
}

// Save overwrites the persisted file with the full sequence. Writes go to a
// temp file first and are renamed into place, so a crash mid-write leaves
// the previous file intact.
func (s *Store) Save(snapshots []Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(snapshots)
}

func (s *Store) save(snapshots []Snapshot) error {
	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	data, err := json.MarshalIndent(snapshots, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Add appends a snapshot of cfg under name and persists. Empty or
// whitespace-only names are rejected without touching the file.
func (s *Store) Add(name string, cfg Configuration) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.New(apperr.ErrCodeInvalidName, "please enter a valid name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshots := s.load()
	snapshots = append(snapshots, Snapshot{Name: name, Config: cfg.Clone()})
	return s.save(snapshots)
}

// Find returns the first snapshot with the given name.
func (s *Store) Find(name string) (Configuration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, snap := range s.load() {
		if snap.Name == name {
			return snap.Config.Clone(), true
		}
	}
	return Configuration{}, false
}

// Delete removes every snapshot with the given name and persists the rest.
// Deleting a name that doesn't exist is not an error.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshots := s.load()
	kept := snapshots[:0]
	for _, snap := range snapshots {
		if snap.Name != name {
			kept = append(kept, snap)
		}
	}
	return s.save(kept)
}

// Names returns the snapshot names in insertion order, duplicates included.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshots := s.load()
	names := make([]string, len(snapshots))
	for i, snap := range snapshots {
		names[i] = snap.Name
	}
	return names
}
