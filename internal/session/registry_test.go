package session

import (
	"context"
	"testing"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	registry := NewRegistry()

	h := NewHandle("s1", "/tmp/out.mp4", nil)
	registry.Register(h)

	got, ok := registry.Lookup("s1")
	if !ok {
		t.Fatal("Expected session to be registered")
	}
	if got.ID != "s1" || got.OutputPath != "/tmp/out.mp4" {
		t.Errorf("Unexpected handle: %+v", got)
	}

	if registry.Len() != 1 {
		t.Errorf("Expected 1 session, got %d", registry.Len())
	}
}

func TestRegistry_CancelUnknown(t *testing.T) {
	registry := NewRegistry()

	// Another session must stay untouched by a miss.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	registry.Register(NewHandle("s1", "/tmp/out.mp4", cancel))

	err := registry.Cancel("no-such-session")
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if _, ok := registry.Lookup("s1"); !ok {
		t.Error("Unrelated session was removed by a failed cancel")
	}
	if ctx.Err() != nil {
		t.Error("Unrelated session context was cancelled")
	}
}

func TestRegistry_Cancel(t *testing.T) {
	registry := NewRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	registry.Register(NewHandle("s1", "/tmp/out.mp4", cancel))

	if err := registry.Cancel("s1"); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	if ctx.Err() == nil {
		t.Error("Expected session context to be cancelled")
	}

	if _, ok := registry.Lookup("s1"); ok {
		t.Error("Expected session to be removed after cancel")
	}

	// Second cancel of the same id is a typed no-op.
	if err := registry.Cancel("s1"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound on repeated cancel, got %v", err)
	}
}

func TestRegistry_RemoveIdempotent(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewHandle("s1", "", nil))

	registry.Remove("s1")
	registry.Remove("s1")

	if registry.Len() != 0 {
		t.Errorf("Expected empty registry, got %d entries", registry.Len())
	}
}

func TestHandle_KillWithoutProcess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHandle("s1", "", cancel)

	// No live process between attempts; Kill still cancels the session.
	if err := h.Kill(); err != nil {
		t.Errorf("Kill without process should not fail, got %v", err)
	}
	if ctx.Err() == nil {
		t.Error("Expected context to be cancelled")
	}
}

func TestHandle_SetClearProcess(t *testing.T) {
	h := NewHandle("s1", "", nil)

	h.SetProcess(nil)
	h.ClearProcess()

	if err := h.Kill(); err != nil {
		t.Errorf("Kill after ClearProcess should not fail, got %v", err)
	}
}
