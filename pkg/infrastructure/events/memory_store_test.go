package events

import (
	"testing"
)

func TestMemoryStoreForRun(t *testing.T) {
	store := NewMemoryStore()

	store.Append(NewEvent(RunStarted, "run-a", RunStartedData{Specs: 3, Unassigned: 3}))
	store.Append(NewEvent(GroupAssigned, "run-a", GroupAssignedData{Category: "resistor"}))
	store.Append(NewEvent(RunStarted, "run-b", RunStartedData{Specs: 1, Unassigned: 0}))

	runA := store.ForRun("run-a")
	if len(runA) != 2 {
		t.Fatalf("run-a events = %d, want 2", len(runA))
	}
	if runA[0].Type() != RunStarted || runA[1].Type() != GroupAssigned {
		t.Errorf("run-a order = %s, %s", runA[0].Type(), runA[1].Type())
	}

	if len(store.All()) != 3 {
		t.Errorf("all events = %d, want 3", len(store.All()))
	}
	if len(store.ForRun("missing")) != 0 {
		t.Error("unknown run should have no events")
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	store.Append(NewEvent(RunStarted, "run-a", nil))

	events := store.All()
	events[0] = NewEvent(MapPersisted, "run-x", nil)

	if store.All()[0].Type() != RunStarted {
		t.Error("mutating the returned slice leaked into the store")
	}
}
