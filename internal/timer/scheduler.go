// internal/timer/scheduler.go
package timer

import (
	"sort"

	"github.com/google/uuid"
)

// ID identifies a scheduled task.
type ID uint64

type task struct {
	id    ID
	due   float64
	epoch uuid.UUID
	fn    func()
}

// Scheduler runs callbacks after a delay of simulated time. Every task is
// tagged with the epoch that was live when it was scheduled; a task whose
// epoch is no longer live is dropped without running. It is not safe for
// concurrent use.
type Scheduler struct {
	now    float64
	epoch  uuid.UUID
	nextID ID
	tasks  map[ID]*task
}

func NewScheduler(epoch uuid.UUID) *Scheduler {
	return &Scheduler{
		epoch:  epoch,
		nextID: 1,
		tasks:  make(map[ID]*task),
	}
}

// Epoch returns the live epoch.
func (s *Scheduler) Epoch() uuid.UUID {
	return s.epoch
}

// SetEpoch switches the live epoch. Tasks from older epochs stay queued but
// become no-ops.
func (s *Scheduler) SetEpoch(epoch uuid.UUID) {
	s.epoch = epoch
}

// Now returns the simulated time the scheduler has advanced to.
func (s *Scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run once delay simulated seconds have passed.
func (s *Scheduler) After(delay float64, fn func()) ID {
	if delay < 0 {
		delay = 0
	}
	id := s.nextID
	s.nextID++
	s.tasks[id] = &task{id: id, due: s.now + delay, epoch: s.epoch, fn: fn}
	return id
}

// Cancel removes a task. It reports whether the task was still pending.
func (s *Scheduler) Cancel(id ID) bool {
	if _, ok := s.tasks[id]; !ok {
		return false
	}
	delete(s.tasks, id)
	return true
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() {
	clear(s.tasks)
}

// Pending returns the number of queued tasks.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Advance moves simulated time forward and runs the tasks that came due, in
// due order with ties broken by scheduling order. It returns how many ran.
// Tasks scheduled by a callback wait for the next Advance.
func (s *Scheduler) Advance(dt float64) int {
	if dt > 0 {
		s.now += dt
	}
	var due []*task
	for _, t := range s.tasks {
		if t.due <= s.now {
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})

	ran := 0
	for _, t := range due {
		// An earlier callback may have cancelled this one.
		if _, ok := s.tasks[t.id]; !ok {
			continue
		}
		delete(s.tasks, t.id)
		if t.epoch != s.epoch {
			continue
		}
		t.fn()
		ran++
	}
	return ran
}
