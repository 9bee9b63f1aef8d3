package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xbraken/holiday-planner/internal/document"
)

func newFileStore(t *testing.T) (*Local, FileSlot) {
	t.Helper()
	slot := FileSlot{Path: filepath.Join(t.TempDir(), "planner.json")}
	st := NewLocal(slot)
	st.SetPollInterval(10 * time.Millisecond)
	if err := st.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	t.Cleanup(st.Close)
	return st, slot
}

func TestLocalSeedsDefaultDocument(t *testing.T) {
	st, slot := newFileStore(t)

	doc := st.Snapshot()
	if doc == nil || len(doc.Users) != 0 {
		t.Fatalf("expected seeded default document")
	}

	raw, ok, err := slot.Get(context.Background())
	if err != nil || !ok || raw == "" {
		t.Fatalf("expected slot persisted: ok=%v err=%v", ok, err)
	}
}

func TestLocalLoadsExistingDocument(t *testing.T) {
	slot := FileSlot{Path: filepath.Join(t.TempDir(), "planner.json")}
	existing := document.Default()
	existing.Users = []string{"alice"}
	raw, _ := document.Encode(existing)
	if err := slot.Set(context.Background(), string(raw)); err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	st := NewLocal(slot)
	if err := st.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer st.Close()

	if users := st.Snapshot().Users; len(users) != 1 || users[0] != "alice" {
		t.Fatalf("expected existing document loaded, got %v", users)
	}
}

func TestLocalWriteEchoesImmediately(t *testing.T) {
	st, _ := newFileStore(t)

	sub := st.Subscribe()
	defer st.Unsubscribe(sub)
	<-sub.C // initial snapshot

	before := st.Snapshot().LastUpdated
	if err := st.WriteAt(context.Background(), "users", []string{"alice"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	// No poll cycle needed: the writing client sees its write synchronously.
	doc := st.Snapshot()
	if len(doc.Users) != 1 || doc.Users[0] != "alice" {
		t.Fatalf("expected immediate local echo, got %v", doc.Users)
	}
	if doc.LastUpdated < before {
		t.Fatalf("expected lastUpdated stamp")
	}

	select {
	case echoed := <-sub.C:
		if len(echoed.Users) != 1 {
			t.Fatalf("unexpected snapshot: %v", echoed.Users)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for snapshot")
	}
}

func TestLocalPollDetectsForeignWrite(t *testing.T) {
	st, slot := newFileStore(t)

	sub := st.Subscribe()
	defer st.Unsubscribe(sub)
	<-sub.C

	foreign := document.Default()
	foreign.Users = []string{"bob"}
	foreign.LastUpdated = document.NowMillis()
	raw, _ := document.Encode(foreign)
	if err := slot.Set(context.Background(), string(raw)); err != nil {
		t.Fatalf("foreign write: %v", err)
	}

	select {
	case doc := <-sub.C:
		if len(doc.Users) != 1 || doc.Users[0] != "bob" {
			t.Fatalf("unexpected polled snapshot: %v", doc.Users)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("poller never picked up foreign write")
	}
}

func TestLocalWriteDoesNotClobberForeignUpdate(t *testing.T) {
	st, slot := newFileStore(t)

	// A foreign writer adds a user between our poll cycles.
	foreign := document.Default()
	foreign.Users = []string{"bob"}
	raw, _ := document.Encode(foreign)
	if err := slot.Set(context.Background(), string(raw)); err != nil {
		t.Fatalf("foreign write: %v", err)
	}

	if err := st.WriteAt(context.Background(), "tripPlans/bob", document.DefaultPlan()); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc := st.Snapshot()
	if len(doc.Users) != 1 || doc.Users[0] != "bob" {
		t.Fatalf("write clobbered foreign update: %v", doc.Users)
	}
	if _, ok := doc.TripPlans["bob"]; !ok {
		t.Fatalf("expected own write applied")
	}
}

func TestLocalDeleteAndRootReplace(t *testing.T) {
	st, _ := newFileStore(t)
	ctx := context.Background()

	if err := st.WriteAt(ctx, "tripPlans/alice", document.DefaultPlan()); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := st.WriteAt(ctx, "tripPlans/alice", nil); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := st.Snapshot().TripPlans["alice"]; ok {
		t.Fatalf("expected plan deleted")
	}

	if err := st.WriteAt(ctx, "users", []string{"alice"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := st.WriteAt(ctx, "", document.Default()); err != nil {
		t.Fatalf("root replace: %v", err)
	}
	if len(st.Snapshot().Users) != 0 {
		t.Fatalf("expected cleared document")
	}
}

func TestLocalNeverConnected(t *testing.T) {
	st, _ := newFileStore(t)
	if st.Connected() {
		t.Fatalf("emulator must report disconnected")
	}
}

func TestLocalCloseStopsPollerAndSubscribers(t *testing.T) {
	slot := FileSlot{Path: filepath.Join(t.TempDir(), "planner.json")}
	st := NewLocal(slot)
	st.SetPollInterval(10 * time.Millisecond)
	if err := st.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	sub := st.Subscribe()
	<-sub.C

	st.Close()

	if _, ok := <-sub.C; ok {
		t.Fatalf("expected subscription closed")
	}
}
