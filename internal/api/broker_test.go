package api

import (
	"testing"
	"time"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker()
	rid := "r1"
	ch := b.Subscribe(rid)

	evt := RunEvent{Type: "optimization.started", Data: map[string]any{"runId": rid}}
	b.Publish(rid, evt)

	select {
	case got := <-ch:
		if got.Type != evt.Type {
			t.Fatalf("got type %s, want %s", got.Type, evt.Type)
		}
		if got.Data["runId"].(string) != rid {
			t.Fatalf("bad payload: %+v", got.Data)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timeout waiting for event")
	}

	b.Unsubscribe(rid, ch)
	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("channel should be closed after unsubscribe")
		}
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBrokerWildcardReceivesAllRuns(t *testing.T) {
	b := NewBroker()
	all := b.Subscribe(allRuns)
	defer b.Unsubscribe(allRuns, all)

	b.Publish("r-a", RunEvent{Type: "optimization.completed"})
	b.Publish("r-b", RunEvent{Type: "optimization.failed"})

	types := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case evt := <-all:
			types[evt.Type] = true
		case <-time.After(200 * time.Millisecond):
			t.Fatal("timeout waiting for wildcard events")
		}
	}
	if !types["optimization.completed"] || !types["optimization.failed"] {
		t.Fatalf("wildcard missed events: %v", types)
	}
}

func TestBrokerSkipsSlowConsumer(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("r1")
	defer b.Unsubscribe("r1", ch)

	// never read: publishing past the buffer must not block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish("r1", RunEvent{Type: "optimization.completed"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow consumer")
	}
}
