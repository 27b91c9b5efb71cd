package wizard

import "sync"

// LoadState describes where a remote fetch currently stands.
type LoadState int

const (
	LoadPending LoadState = iota
	LoadReady
	LoadFailed
)

// Snapshot is a point-in-time copy of a loader's state.
type Snapshot[T any] struct {
	State LoadState
	Value T
	Err   error
}

// Loader runs a single remote fetch and exposes its outcome.
//
// Each Start or Retry bumps an internal generation counter; a fetch that
// finishes after a newer generation started, or after Close, is dropped.
// That keeps results from a torn-down wizard from mutating anything.
type Loader[T any] struct {
	mu         sync.Mutex
	fetch      func() (T, error)
	state      LoadState
	value      T
	err        error
	generation int
	closed     bool
	onChange   func()
}

// NewLoader creates a loader around the given fetch function.
// The fetch does not run until Start is called.
func NewLoader[T any](fetch func() (T, error)) *Loader[T] {
	return &Loader[T]{fetch: fetch}
}

// OnChange registers a callback invoked after every state transition.
// The callback runs outside the loader's lock.
func (l *Loader[T]) OnChange(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

// Start begins the fetch in a new goroutine.
func (l *Loader[T]) Start() {
	l.begin()
}

// Retry re-runs the fetch. Any still-outstanding earlier fetch is
// invalidated and its result dropped on arrival.
func (l *Loader[T]) Retry() {
	l.begin()
}

// Close invalidates the loader; late-arriving results are discarded.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
}

// Get returns a snapshot of the current state.
func (l *Loader[T]) Get() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return Snapshot[T]{State: l.state, Value: l.value, Err: l.err}
}

func (l *Loader[T]) begin() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}

	l.state = LoadPending
	l.err = nil
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	go l.run(gen)
}

func (l *Loader[T]) run(gen int) {
	value, err := l.fetch()

	l.mu.Lock()
	if l.closed || gen != l.generation {
		l.mu.Unlock()
		return
	}

	if err != nil {
		l.state = LoadFailed
		l.err = err
	} else {
		l.state = LoadReady
		l.value = value
		l.err = nil
	}

	fn := l.onChange
	l.mu.Unlock()

	if fn != nil {
		fn()
	}
}
