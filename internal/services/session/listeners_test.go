package session

import (
	"reflect"
	"testing"
)

func TestQueue_DrainIsLIFOAndConsumesCancelled(t *testing.T) {
	var q queue[func()]
	var got []int

	q.add(func() { got = append(got, 1) })
	cancel := q.add(func() { got = append(got, 2) })
	q.add(func() { got = append(got, 3) })
	cancel()

	if q.pending() != 3 {
		t.Fatalf("cancel must not dequeue: pending=%d", q.pending())
	}

	q.drain(func(fn func()) { fn() })
	if !reflect.DeepEqual(got, []int{3, 1}) {
		t.Fatalf("fire order: want [3 1], got %v", got)
	}
	if q.pending() != 0 {
		t.Fatalf("drain left %d subscriptions", q.pending())
	}

	q.drain(func(fn func()) { fn() })
	if len(got) != 2 {
		t.Fatal("one-shot listener fired twice")
	}
}

func TestQueue_AddDuringDrainWaitsForNextDrain(t *testing.T) {
	var q queue[func()]
	fired := 0

	q.add(func() {
		q.add(func() { fired++ })
	})
	q.drain(func(fn func()) { fn() })
	if fired != 0 || q.pending() != 1 {
		t.Fatalf("listener added mid-drain: fired=%d pending=%d", fired, q.pending())
	}

	q.drain(func(fn func()) { fn() })
	if fired != 1 {
		t.Fatalf("want 1 fire on the next drain, got %d", fired)
	}
}

func TestQueue_NestedDrain(t *testing.T) {
	var q queue[func()]
	var got []int

	q.add(func() { got = append(got, 1) })
	q.add(func() { got = append(got, 2) })
	q.add(func() {
		got = append(got, 3)
		q.drain(func(fn func()) { fn() })
	})

	q.drain(func(fn func()) { fn() })
	if !reflect.DeepEqual(got, []int{3, 2, 1}) {
		t.Fatalf("want [3 2 1], got %v", got)
	}
}
