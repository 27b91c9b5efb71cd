package wizard

import (
	"errors"
	"sync"

	"github.com/panelctl/panelctl/internal/api"
)

// ErrSubmitBusy is returned when a submit is attempted while another is
// still in flight. Duplicate clicks must never create two servers.
var ErrSubmitBusy = errors.New("a submission is already in flight")

// CreateFunc performs the terminal create-server call.
type CreateFunc func(api.CreateServerRequest) (api.Server, error)

// Submitter serializes create-server calls: at most one outstanding
// submission, with re-entry rejected rather than queued.
type Submitter struct {
	mu       sync.Mutex
	inFlight bool
	create   CreateFunc
}

// NewSubmitter creates a submitter around the given create call.
func NewSubmitter(create CreateFunc) *Submitter {
	return &Submitter{create: create}
}

// Submit performs the create call, blocking until it finishes. A call
// made while another is in flight fails immediately with ErrSubmitBusy.
func (s *Submitter) Submit(req api.CreateServerRequest) (api.Server, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return api.Server{}, ErrSubmitBusy
	}

	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	return s.create(req)
}

// InFlight reports whether a submission is currently outstanding.
func (s *Submitter) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}
