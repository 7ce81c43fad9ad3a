package app

import (
	"context"
	"testing"

	"github.com/dkeye/Roulette/internal/core"
)

type nopConn struct{}

func (nopConn) TrySend(core.Frame) error { return nil }
func (nopConn) Close()                   {}

func TestRegistryBindGetUnbind(t *testing.T) {
	r := NewRegistry()

	if _, ok := r.Get("c1"); ok {
		t.Fatal("Get on empty registry reported a connection")
	}

	r.Bind("c1", nopConn{}, nil)
	if _, ok := r.Get("c1"); !ok {
		t.Fatal("bound connection not found")
	}
	if got := r.Count(); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}

	r.Unbind("c1")
	if _, ok := r.Get("c1"); ok {
		t.Fatal("connection still found after unbind")
	}
}

func TestRegistryCancel(t *testing.T) {
	r := NewRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	r.Bind("c1", nopConn{}, cancel)

	if !r.Cancel("c1") {
		t.Fatal("Cancel of bound connection returned false")
	}
	select {
	case <-ctx.Done():
	default:
		t.Fatal("context not canceled")
	}

	if r.Cancel("ghost") {
		t.Fatal("Cancel of unknown connection returned true")
	}
}
