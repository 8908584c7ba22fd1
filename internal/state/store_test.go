package state

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "nested", "applied_tweaks.json"))
}

func TestLoadMissingFileReturnsEmptySet(t *testing.T) {
	s := tempStore(t)
	got := s.Load()
	if len(got) != 0 {
		t.Fatalf("expected empty set, got %v", got.IDs())
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s := tempStore(t)
	in := NewSet("b", "a", "c")
	if err := s.Save(in); err != nil {
		t.Fatal(err)
	}
	out := s.Load()
	if !reflect.DeepEqual(out.IDs(), []string{"a", "b", "c"}) {
		t.Fatalf("round trip mismatch: %v", out.IDs())
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	s := tempStore(t)
	in := NewSet("x", "y")
	if err := s.Save(in); err != nil {
		t.Fatal(err)
	}
	first := s.Load()
	if err := s.Save(in); err != nil {
		t.Fatal(err)
	}
	second := s.Load()
	if !reflect.DeepEqual(first.IDs(), second.IDs()) {
		t.Fatalf("repeated save changed the set: %v vs %v", first.IDs(), second.IDs())
	}
}

func TestLoadCorruptFileReturnsEmptySet(t *testing.T) {
	s := tempStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	got := s.Load()
	if len(got) != 0 {
		t.Fatalf("expected empty set from corrupt file, got %v", got.IDs())
	}
}

func TestCorruptionSelfHealsOnSave(t *testing.T) {
	s := tempStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.Path, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(NewSet("a")); err != nil {
		t.Fatal(err)
	}
	if !s.Load().Has("a") {
		t.Fatal("save after corruption did not persist")
	}
}

func TestSaveRecordsTimestamp(t *testing.T) {
	s := tempStore(t)
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	if err := s.Save(NewSet("a")); err != nil {
		t.Fatal(err)
	}
	if got := s.LastModified(); !got.Equal(fixed) {
		t.Fatalf("last modified = %v, want %v", got, fixed)
	}
}

func TestSetOperations(t *testing.T) {
	s := NewSet("a")
	s.Add("b")
	s.Remove("a")
	if s.Has("a") || !s.Has("b") {
		t.Fatalf("unexpected membership: %v", s.IDs())
	}
	c := s.Clone()
	c.Add("z")
	if s.Has("z") {
		t.Fatal("clone aliases original")
	}
}
