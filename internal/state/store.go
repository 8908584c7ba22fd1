package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Set is the collection of tweak ids currently considered applied.
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id string) bool { _, ok := s[id]; return ok }

func (s Set) Add(id string)    { s[id] = struct{}{} }
func (s Set) Remove(id string) { delete(s, id) }

// IDs returns the members sorted for deterministic persistence and output.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s Set) Clone() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// record is the persisted file layout.
type record struct {
	Applied      []string  `json:"applied"`
	LastModified time.Time `json:"last_modified"`
}

// Store persists the applied-state set as a single JSON document.
// It is the sole owner of the persisted record; engines work on transient
// copies and hand the result back through Save once per batch.
type Store struct {
	Path string

	now func() time.Time // overridable in tests
}

func NewStore(path string) *Store {
	return &Store{Path: path, now: time.Now}
}

// DefaultPath places the state file under the per-user configuration
// directory (%AppData%\arcboost on Windows).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "arcboost", "applied_tweaks.json"), nil
}

// Load reads the persisted set. A missing file means first run and a
// malformed one is treated the same way: both yield an empty set, never an
// error. Corruption self-heals on the next Save.
func (s *Store) Load() Set {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return Set{}
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return Set{}
	}
	return NewSet(rec.Applied...)
}

// Save writes the set plus a current timestamp, creating directories as
// needed. The write goes through a temp file and an atomic rename so a crash
// never leaves a half-written record. Saving an equal set again produces an
// equivalent record (only the timestamp moves).
func (s *Store) Save(ids Set) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create state dir %s: %w", dir, err)
	}
	rec := record{Applied: ids.IDs(), LastModified: s.now().UTC().Truncate(time.Second)}
	b, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".applied_tweaks-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	_, werr := tmp.Write(b)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(tmp.Name())
		if werr != nil {
			return fmt.Errorf("write state: %w", werr)
		}
		return fmt.Errorf("write state: %w", cerr)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// LastModified reports the persisted timestamp, zero when absent or
// unreadable.
func (s *Store) LastModified() time.Time {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return time.Time{}
	}
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return time.Time{}
	}
	return rec.LastModified
}
