package timer

import (
	"testing"

	"github.com/google/uuid"
)

func TestAdvanceRunsDueTasksInOrder(t *testing.T) {
	s := NewScheduler(uuid.New())
	var order []int
	s.After(2, func() { order = append(order, 2) })
	s.After(1, func() { order = append(order, 1) })
	s.After(1, func() { order = append(order, 11) })

	if ran := s.Advance(0.5); ran != 0 {
		t.Fatalf("ran %d tasks too early", ran)
	}
	if ran := s.Advance(1.5); ran != 3 {
		t.Fatalf("ran %d, want 3", ran)
	}
	want := []int{1, 11, 2}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
	if s.Pending() != 0 {
		t.Fatalf("pending = %d", s.Pending())
	}
}

func TestCancel(t *testing.T) {
	s := NewScheduler(uuid.New())
	fired := false
	id := s.After(1, func() { fired = true })
	if !s.Cancel(id) {
		t.Fatalf("cancel of a pending task should report true")
	}
	if s.Cancel(id) {
		t.Fatalf("second cancel should report false")
	}
	s.Advance(5)
	if fired {
		t.Fatalf("cancelled task ran")
	}
}

func TestStaleEpochIsNoOp(t *testing.T) {
	s := NewScheduler(uuid.New())
	fired := false
	s.After(1, func() { fired = true })
	s.SetEpoch(uuid.New())
	if ran := s.Advance(2); ran != 0 || fired {
		t.Fatalf("task from an old epoch ran")
	}
	if s.Pending() != 0 {
		t.Fatalf("stale task should be dropped")
	}
}

func TestCancelAllAndReschedule(t *testing.T) {
	s := NewScheduler(uuid.New())
	count := 0
	s.After(1, func() { count++ })
	s.After(2, func() { count++ })
	s.CancelAll()
	s.After(1, func() {
		count++
		s.After(0, func() { count += 10 })
	})
	s.Advance(1)
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
	s.Advance(0)
	if count != 11 {
		t.Fatalf("task scheduled from a callback should run on the next advance, count = %d", count)
	}
}
