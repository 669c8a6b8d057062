package assist

import (
	"errors"
	"sync"
	"time"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/llm"
)

// ErrInFlight is returned when a draft is requested while one is running
var ErrInFlight = errors.New("a draft is already being generated for this section")

// State is the observable state of a Task
type State string

// Task states
const (
	StateIdle      State = "idle"
	StateInFlight  State = "in_flight"
	StateCompleted State = "completed"
)

// Snapshot is a point-in-time copy of a Task
type Snapshot struct {
	State      State     `json:"state"`
	Result     string    `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"` // user-facing message
	StartedAt  time.Time `json:"startedAt,omitempty"`
	FinishedAt time.Time `json:"finishedAt,omitempty"`
	err        error
}

// Err returns the error the last run completed with
func (s Snapshot) Err() error {
	return s.err
}

// Task tracks one section's generation request. It moves idle → in-flight →
// completed and may be started again once completed.
type Task struct {
	mu         sync.Mutex
	state      State
	result     string
	err        error
	startedAt  time.Time
	finishedAt time.Time
	done       chan struct{} // closed when the in-flight request completes
	now        func() time.Time
}

// NewTask returns an idle task
func NewTask() *Task {
	return &Task{state: StateIdle, now: time.Now}
}

// Start moves the task in flight, clearing the previous outcome
func (t *Task) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateInFlight {
		return ErrInFlight
	}
	t.state = StateInFlight
	t.result = ""
	t.err = nil
	t.startedAt = t.clock()
	t.finishedAt = time.Time{}
	t.done = make(chan struct{})
	return nil
}

// Complete records the outcome of the in-flight request
func (t *Task) Complete(result string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = StateCompleted
	t.result = result
	t.err = err
	t.finishedAt = t.clock()
	if t.done != nil {
		close(t.done)
		t.done = nil
	}
}

// Done returns a channel that is closed once the current request completes.
// When nothing is in flight the channel is already closed.
func (t *Task) Done() <-chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateInFlight && t.done != nil {
		return t.done
	}
	closed := make(chan struct{})
	close(closed)
	return closed
}

func (t *Task) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

// Snapshot returns the current state
func (t *Task) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		State:      t.state,
		StartedAt:  t.startedAt,
		FinishedAt: t.finishedAt,
		err:        t.err,
	}
	if s.State == "" {
		s.State = StateIdle
	}
	if t.err != nil {
		s.Error = llm.UserMessage(t.err)
	} else {
		s.Result = t.result
	}
	return s
}
