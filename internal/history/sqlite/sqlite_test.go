package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/arcboost/arcboost/internal/history"
)

func TestSQLiteSink_File(t *testing.T) {
	dbPath := t.TempDir() + "/audit.db"

	sink, err := New("sqlite://" + dbPath)
	if err != nil {
		t.Fatalf("Failed to create sink: %v", err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			t.Errorf("Failed to close sink: %v", err)
		}
	}()

	ctx := context.Background()
	e := history.Event{
		Type:       history.EventApply,
		OccurredAt: time.Now().UTC(),
		TweakID:    "game_mode_enable",
		TweakName:  "Enable Windows Game Mode",
		Outcome:    "applied",
		Elevated:   false,
	}
	if err := sink.Send(ctx, e); err != nil {
		t.Fatalf("Failed to send event: %v", err)
	}

	// A failure event carries a message.
	e.Outcome = "failed"
	e.Message = "access denied"
	if err := sink.Send(ctx, e); err != nil {
		t.Fatalf("Failed to send failure event: %v", err)
	}
}

func TestSQLiteSink_InMemory(t *testing.T) {
	sink, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory sink: %v", err)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			t.Errorf("Failed to close sink: %v", err)
		}
	}()

	e := history.Event{
		Type:       history.EventRestore,
		OccurredAt: time.Now().UTC(),
		TweakID:    "disable_game_bar",
		TweakName:  "Disable Xbox Game Bar",
		Outcome:    "restored",
		Elevated:   true,
	}
	if err := sink.Send(context.Background(), e); err != nil {
		t.Fatalf("Failed to send event: %v", err)
	}
}

func TestSQLiteSink_EmptyDSN(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}
