package factory

import (
	"testing"

	"github.com/arcboost/arcboost/internal/history/sqlite"
)

func TestNewSinkFromDSN_EmptyRejected(t *testing.T) {
	if _, err := NewSinkFromDSN(""); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestNewSinkFromDSN_UnsupportedScheme(t *testing.T) {
	if _, err := NewSinkFromDSN("mongodb://host/db"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestNewSinkFromDSN_SQLiteExplicit(t *testing.T) {
	s, err := NewSinkFromDSN("sqlite://:memory:")
	if err != nil {
		t.Fatalf("sqlite DSN failed: %v", err)
	}
	sink, ok := s.(*sqlite.Sink)
	if !ok {
		t.Fatalf("expected sqlite sink, got %T", s)
	}
	_ = sink.Close()
}

func TestNewSinkFromDSN_PlainPathDefaultsToSQLite(t *testing.T) {
	path := t.TempDir() + "/audit.db"
	s, err := NewSinkFromDSN(path)
	if err != nil {
		t.Fatalf("plain path DSN failed: %v", err)
	}
	sink, ok := s.(*sqlite.Sink)
	if !ok {
		t.Fatalf("expected sqlite sink, got %T", s)
	}
	_ = sink.Close()
}
