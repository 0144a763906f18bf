package engine

import (
	"container/heap"
	"sync"
	"sync/atomic"
	"time"
)

// TaskID identifies a scheduled task for cancellation
type TaskID uint64

// Scheduler runs delayed callbacks against an injectable clock.
//
// Two driving modes share one implementation: Start launches a background
// loop that sleeps until the earliest deadline (real clock), while tests
// advance a MockClock and call RunDue directly. Callbacks run outside the
// scheduler mutex, so a task may freely schedule or cancel other tasks.
type Scheduler struct {
	clock Clock

	mu     sync.Mutex
	tasks  taskHeap
	byID   map[TaskID]*task
	nextID atomic.Uint64

	wakeChan chan struct{}
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

type task struct {
	id       TaskID
	deadline time.Time
	fn       func()
	index    int // heap position, -1 when removed
}

// NewScheduler creates a scheduler over the given clock
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{
		clock:    clock,
		byID:     make(map[TaskID]*task),
		wakeChan: make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

// Schedule runs fn once after delay. The returned id cancels the task.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) TaskID {
	id := TaskID(s.nextID.Add(1))
	t := &task{
		id:       id,
		deadline: s.clock.Now().Add(delay),
		fn:       fn,
	}

	s.mu.Lock()
	heap.Push(&s.tasks, t)
	s.byID[id] = t
	s.mu.Unlock()

	s.wake()
	return id
}

// Cancel removes a pending task. Returns false if the task already ran,
// was cancelled before, or never existed - callers treat all three alike.
func (s *Scheduler) Cancel(id TaskID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	heap.Remove(&s.tasks, t.index)
	return true
}

// Pending returns the number of tasks not yet run or cancelled
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// RunDue executes every task whose deadline is at or before the clock's
// now, in deadline order. Returns the number of tasks run.
func (s *Scheduler) RunDue() int {
	ran := 0
	for {
		s.mu.Lock()
		if len(s.tasks) == 0 || s.tasks[0].deadline.After(s.clock.Now()) {
			s.mu.Unlock()
			return ran
		}
		t := heap.Pop(&s.tasks).(*task)
		delete(s.byID, t.id)
		s.mu.Unlock()

		// Outside the lock: the callback may re-enter the scheduler
		t.fn()
		ran++
	}
}

// Start launches the background loop for real-clock operation
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		go s.loop()
	}
}

// Stop halts the background loop. Idempotent.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.running.CompareAndSwap(true, false) {
			close(s.stopChan)
			s.wg.Wait()
		}
	})
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		s.RunDue()

		s.mu.Lock()
		var sleep time.Duration
		if len(s.tasks) == 0 {
			sleep = time.Hour // re-woken on Schedule
		} else {
			sleep = s.tasks[0].deadline.Sub(s.clock.Now())
			if sleep < 0 {
				sleep = 0
			}
		}
		s.mu.Unlock()

		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-s.wakeChan:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		case <-s.stopChan:
			return
		}
	}
}

func (s *Scheduler) wake() {
	select {
	case s.wakeChan <- struct{}{}:
	default:
	}
}

// taskHeap is a min-heap ordered by deadline
type taskHeap []*task

func (h taskHeap) Len() int           { return len(h) }
func (h taskHeap) Less(i, j int) bool { return h[i].deadline.Before(h[j].deadline) }
func (h taskHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *taskHeap) Push(x any)        { t := x.(*task); t.index = len(*h); *h = append(*h, t) }
func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
