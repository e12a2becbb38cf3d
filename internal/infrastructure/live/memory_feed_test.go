package live

import (
	"context"
	"testing"
	"time"
)

func waitSignal(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed delivery")
	}
}

func TestMemoryFeedDeliversSignal(t *testing.T) {
	f := NewMemoryFeed()
	got := make(chan struct{}, 1)
	cancel := f.Subscribe("t1", "members", func() { got <- struct{}{} })
	defer cancel()

	f.NotifyChange(context.Background(), "t1", "members")

	waitSignal(t, got)
}

func TestMemoryFeedScopesAreIsolated(t *testing.T) {
	f := NewMemoryFeed()
	got := make(chan struct{}, 1)
	cancel := f.Subscribe("t1", "members", func() { got <- struct{}{} })
	defer cancel()

	f.NotifyChange(context.Background(), "t2", "members")
	f.NotifyChange(context.Background(), "t1", "attendance")

	select {
	case <-got:
		t.Fatal("signal crossed scope or collection boundary")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryFeedCancelStopsDelivery(t *testing.T) {
	f := NewMemoryFeed()
	got := make(chan struct{}, 1)
	cancel := f.Subscribe("t1", "members", func() { got <- struct{}{} })

	cancel()
	cancel() // idempotent

	f.NotifyChange(context.Background(), "t1", "members")

	select {
	case <-got:
		t.Fatal("cancelled subscription still delivered")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryFeedCoalescesBursts(t *testing.T) {
	f := NewMemoryFeed()
	entered := make(chan struct{})
	proceed := make(chan struct{})
	cancel := f.Subscribe("t1", "members", func() {
		entered <- struct{}{}
		<-proceed
	})
	defer cancel()

	ctx := context.Background()
	f.NotifyChange(ctx, "t1", "members")
	waitSignal(t, entered) // first delivery in progress

	// One signal pends in the slot, the rest collapse into it.
	for i := 0; i < 5; i++ {
		f.NotifyChange(ctx, "t1", "members")
	}
	proceed <- struct{}{}

	waitSignal(t, entered) // the coalesced delivery
	proceed <- struct{}{}

	select {
	case <-entered:
		t.Fatal("burst did not coalesce into a single pending signal")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestParseChannel(t *testing.T) {
	collection, scope, ok := parseChannel("live:members:t-accra")
	if !ok || collection != "members" || scope != "t-accra" {
		t.Fatalf("unexpected parse: %q %q %v", collection, scope, ok)
	}

	if _, _, ok := parseChannel("other:members:t1"); ok {
		t.Error("foreign channel accepted")
	}
	if _, _, ok := parseChannel("live:members"); ok {
		t.Error("channel without scope accepted")
	}
}
