package app

import (
	"errors"
	"testing"
	"time"

	"github.com/dkeye/Roulette/internal/core"
	"github.com/dkeye/Roulette/internal/domain"
)

func TestRequestMatchEnqueuesFirstSeeker(t *testing.T) {
	m := NewMatchmaker()

	sess, err := m.RequestMatch("u1", domain.ModeText)
	if err != nil {
		t.Fatalf("RequestMatch: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected pending, got session %s", sess.ID)
	}
	if got := m.WaitingCount(domain.ModeText); got != 1 {
		t.Fatalf("waiting count = %d, want 1", got)
	}
	if got := m.SessionCount(); got != 0 {
		t.Fatalf("session count = %d, want 0", got)
	}
}

func TestRequestMatchPairsWithSoleWaiter(t *testing.T) {
	m := NewMatchmaker()

	if _, err := m.RequestMatch("u1", domain.ModeText); err != nil {
		t.Fatalf("enqueue u1: %v", err)
	}
	sess, err := m.RequestMatch("u2", domain.ModeText)
	if err != nil {
		t.Fatalf("match u2: %v", err)
	}
	if sess == nil {
		t.Fatal("expected a session, got pending")
	}
	if !sess.Has("u1") || !sess.Has("u2") {
		t.Fatalf("session members = %s/%s, want u1+u2", sess.A, sess.B)
	}
	if sess.Mode != domain.ModeText {
		t.Fatalf("session mode = %s, want text", sess.Mode)
	}
	if got := m.WaitingCount(domain.ModeText); got != 0 {
		t.Fatalf("waiting count after match = %d, want 0", got)
	}

	// Both members resolve to the same session, neither waits anywhere.
	for _, cid := range []domain.ConnID{"u1", "u2"} {
		got, ok := m.SessionOf(cid)
		if !ok || got.ID != sess.ID {
			t.Fatalf("SessionOf(%s) = %v, want %s", cid, got, sess.ID)
		}
		if m.RemoveWaiter(cid) {
			t.Fatalf("%s still had a waiting entry after match", cid)
		}
	}
}

func TestRequestMatchStrictFIFO(t *testing.T) {
	m := NewMatchmaker()

	for _, cid := range []domain.ConnID{"w1", "w2", "w3"} {
		if _, err := m.RequestMatch(cid, domain.ModeVideo); err != nil {
			t.Fatalf("enqueue %s: %v", cid, err)
		}
	}

	first, err := m.RequestMatch("s1", domain.ModeVideo)
	if err != nil || first == nil {
		t.Fatalf("s1 match: sess=%v err=%v", first, err)
	}
	if !first.Has("w1") {
		t.Fatalf("s1 paired with %s/%s, want oldest waiter w1", first.A, first.B)
	}

	second, err := m.RequestMatch("s2", domain.ModeVideo)
	if err != nil || second == nil {
		t.Fatalf("s2 match: sess=%v err=%v", second, err)
	}
	if !second.Has("w2") {
		t.Fatalf("s2 paired with %s/%s, want w2", second.A, second.B)
	}
}

func TestRequestMatchQueuesAreModeScoped(t *testing.T) {
	m := NewMatchmaker()

	if _, err := m.RequestMatch("texter", domain.ModeText); err != nil {
		t.Fatalf("enqueue texter: %v", err)
	}
	sess, err := m.RequestMatch("videoer", domain.ModeVideo)
	if err != nil {
		t.Fatalf("enqueue videoer: %v", err)
	}
	if sess != nil {
		t.Fatal("video seeker must not pair with a text waiter")
	}
}

func TestRequestMatchRejectsExistingState(t *testing.T) {
	m := NewMatchmaker()

	if _, err := m.RequestMatch("u1", domain.ModeText); err != nil {
		t.Fatalf("enqueue u1: %v", err)
	}
	if _, err := m.RequestMatch("u1", domain.ModeText); !errors.Is(err, core.ErrAlreadyQueuedOrPaired) {
		t.Fatalf("re-enqueue err = %v, want ErrAlreadyQueuedOrPaired", err)
	}
	// Switching modes while waiting is rejected too.
	if _, err := m.RequestMatch("u1", domain.ModeVideo); !errors.Is(err, core.ErrAlreadyQueuedOrPaired) {
		t.Fatalf("cross-mode re-enqueue err = %v, want ErrAlreadyQueuedOrPaired", err)
	}
	if got := m.WaitingCount(domain.ModeText); got != 1 {
		t.Fatalf("waiting count = %d, want 1 (rejection must not mutate)", got)
	}

	if _, err := m.RequestMatch("u2", domain.ModeText); err != nil {
		t.Fatalf("match u2: %v", err)
	}
	if _, err := m.RequestMatch("u1", domain.ModeText); !errors.Is(err, core.ErrAlreadyQueuedOrPaired) {
		t.Fatalf("paired find-match err = %v, want ErrAlreadyQueuedOrPaired", err)
	}
}

func TestDestroyClearsReverseIndex(t *testing.T) {
	m := NewMatchmaker()
	m.RequestMatch("u1", domain.ModeText)
	sess, _ := m.RequestMatch("u2", domain.ModeText)

	removed, ok := m.Destroy(sess.ID)
	if !ok || removed.ID != sess.ID {
		t.Fatalf("Destroy = %v/%v, want session %s", removed, ok, sess.ID)
	}
	if _, ok := m.Get(sess.ID); ok {
		t.Fatal("session still resolvable after destroy")
	}
	if _, ok := m.SessionOf("u1"); ok {
		t.Fatal("u1 still owns a session after destroy")
	}
	if _, ok := m.Destroy(sess.ID); ok {
		t.Fatal("second destroy reported success")
	}

	// Both members are free to match again.
	if _, err := m.RequestMatch("u1", domain.ModeText); err != nil {
		t.Fatalf("rematch u1: %v", err)
	}
}

func TestDisconnectRemovesWaiter(t *testing.T) {
	m := NewMatchmaker()
	m.RequestMatch("u1", domain.ModeText)

	if sess, ok := m.Disconnect("u1"); ok || sess != nil {
		t.Fatalf("Disconnect of waiter returned session %v", sess)
	}
	if got := m.WaitingCount(domain.ModeText); got != 0 {
		t.Fatalf("waiting count = %d, want 0", got)
	}

	// The next pair of seekers match each other, not the ghost.
	m.RequestMatch("u2", domain.ModeText)
	sess, err := m.RequestMatch("u3", domain.ModeText)
	if err != nil || sess == nil {
		t.Fatalf("match u3: sess=%v err=%v", sess, err)
	}
	if sess.Has("u1") {
		t.Fatal("disconnected waiter got matched")
	}
}

func TestDisconnectDestroysOwnedSession(t *testing.T) {
	m := NewMatchmaker()
	m.RequestMatch("u1", domain.ModeText)
	created, _ := m.RequestMatch("u2", domain.ModeText)

	sess, ok := m.Disconnect("u1")
	if !ok || sess.ID != created.ID {
		t.Fatalf("Disconnect = %v/%v, want session %s", sess, ok, created.ID)
	}
	if other, _ := sess.Other("u1"); other != "u2" {
		t.Fatalf("Other(u1) = %s, want u2", other)
	}
	if _, ok := m.Get(created.ID); ok {
		t.Fatal("session survived owner disconnect")
	}
}

func TestDisconnectNoStateIsNoop(t *testing.T) {
	m := NewMatchmaker()
	if _, ok := m.Disconnect("ghost"); ok {
		t.Fatal("Disconnect of unknown conn reported a session")
	}
}

func TestSweepStale(t *testing.T) {
	m := NewMatchmaker()
	base := time.Now()
	m.now = func() time.Time { return base }

	m.RequestMatch("old1", domain.ModeText)
	oldSess, _ := m.RequestMatch("old2", domain.ModeText)

	m.now = func() time.Time { return base.Add(90 * time.Minute) }
	m.RequestMatch("new1", domain.ModeVideo)
	newSess, _ := m.RequestMatch("new2", domain.ModeVideo)

	m.now = func() time.Time { return base.Add(2*time.Hour + time.Minute) }
	stale := m.SweepStale(2 * time.Hour)
	if len(stale) != 1 || stale[0].ID != oldSess.ID {
		t.Fatalf("SweepStale = %v, want just %s", stale, oldSess.ID)
	}
	if _, ok := m.Get(oldSess.ID); ok {
		t.Fatal("stale session survived the sweep")
	}
	if _, ok := m.Get(newSess.ID); !ok {
		t.Fatal("fresh session was swept")
	}

	// Idle time alone never triggers the sweep, only absolute age.
	if stale := m.SweepStale(2 * time.Hour); len(stale) != 0 {
		t.Fatalf("second sweep removed %d sessions, want 0", len(stale))
	}
}
