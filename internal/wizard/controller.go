package wizard

import (
	"errors"
	"strings"
	"sync"

	"github.com/panelctl/panelctl/internal/api"
)

// Step is one stage of the server-creation wizard.
type Step int

const (
	StepDetails Step = 1 + iota
	StepResources
	StepSoftware
	StepNode
)

const (
	firstStep = StepDetails
	lastStep  = StepNode
)

// String returns the step's display name.
func (s Step) String() string {
	switch s {
	case StepDetails:
		return "Details"
	case StepResources:
		return "Resources"
	case StepSoftware:
		return "Software"
	case StepNode:
		return "Node"
	}
	return "unknown"
}

// ErrQuotaExhausted is returned when the account cannot provision any
// server at all (no slots, or a zero resource cap).
var ErrQuotaExhausted = errors.New("account quota does not allow creating a server")

// ErrStepBlocked is returned when an advance or submit is attempted while
// its step gate does not hold. It marks a disabled action, not a fault.
var ErrStepBlocked = errors.New("step requirements are not met")

// Draft is the in-progress server-creation form state.
//
// EggID and NodeID hold public catalog identifiers; zero means not chosen.
type Draft struct {
	Name        string
	Description string
	Memory      int
	Disk        int
	CPU         int
	Databases   int
	Allocations int
	EggID       int
	NodeID      int
}

func defaultDraft() Draft {
	return Draft{
		Memory: 512,
		Disk:   1024,
		CPU:    25,
	}
}

func (d Draft) request() api.CreateServerRequest {
	return api.CreateServerRequest{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Memory:      d.Memory,
		Disk:        d.Disk,
		CPU:         d.CPU,
		Databases:   d.Databases,
		Allocations: d.Allocations,
		EggID:       d.EggID,
		NodeID:      d.NodeID,
	}
}

// Fetchers supplies the three remote reads the wizard depends on.
type Fetchers struct {
	Quota func() (api.Quota, error)
	Eggs  func() ([]api.Egg, error)
	Nodes func() ([]api.Node, error)
}

// Controller is the wizard state machine.
//
// It owns the current step and the draft, fires the three catalog/quota
// loads on Start, gates step transitions, and hands the finished draft to
// its Submitter. All methods are safe for concurrent use; mutation happens
// only through them.
type Controller struct {
	mu        sync.Mutex
	step      Step
	draft     Draft
	submitErr error
	handle    string
	notify    func()

	quota     *Loader[api.Quota]
	eggs      *Loader[[]api.Egg]
	nodes     *Loader[[]api.Node]
	submitter *Submitter
}

// NewController builds a wizard over the given data fetchers and
// create call. Nothing is fetched until Start.
func NewController(f Fetchers, create CreateFunc) *Controller {
	c := &Controller{
		step:      firstStep,
		draft:     defaultDraft(),
		quota:     NewLoader(f.Quota),
		eggs:      NewLoader(f.Eggs),
		nodes:     NewLoader(f.Nodes),
		submitter: NewSubmitter(create),
	}

	c.quota.OnChange(c.onQuotaChange)
	c.eggs.OnChange(c.changed)
	c.nodes.OnChange(c.changed)

	return c
}

// OnChange registers a callback invoked after every observable state
// change (step moves, draft edits, load completions, submit outcomes).
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.notify = fn
	c.mu.Unlock()
}

// Start fires the three data loads. Each runs independently; any subset
// of them may be pending, ready, or failed at any moment.
func (c *Controller) Start() {
	c.quota.Start()
	c.eggs.Start()
	c.nodes.Start()
}

// Close tears the wizard down. In-flight loads keep running but their
// results are discarded on arrival.
func (c *Controller) Close() {
	c.quota.Close()
	c.eggs.Close()
	c.nodes.Close()
}

// Step returns the current step.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// QuotaState returns the quota load state.
func (c *Controller) QuotaState() Snapshot[api.Quota] {
	return c.quota.Get()
}

// EggsState returns the software catalog load state.
func (c *Controller) EggsState() Snapshot[[]api.Egg] {
	return c.eggs.Get()
}

// NodesState returns the node catalog load state.
func (c *Controller) NodesState() Snapshot[[]api.Node] {
	return c.nodes.Get()
}

// Blocked reports whether the wizard's entry gate failed: the quota has
// loaded and forbids creation entirely. No step is offered in that state.
func (c *Controller) Blocked() bool {
	snap := c.quota.Get()
	return snap.State == LoadReady && !CanCreate(snap.Value)
}

// SubmitError returns the retained failure reason from the last submit,
// or nil.
func (c *Controller) SubmitError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitErr
}

// Handle returns the created server's identifier after a successful
// submit, or "".
func (c *Controller) Handle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}

// SetName replaces the draft's server name.
func (c *Controller) SetName(name string) {
	c.mu.Lock()
	c.draft.Name = name
	c.mu.Unlock()
	c.changed()
}

// SetDescription replaces the draft's description.
func (c *Controller) SetDescription(desc string) {
	c.mu.Lock()
	c.draft.Description = desc
	c.mu.Unlock()
	c.changed()
}

// SetResource replaces one resource dimension of the draft. Callers are
// expected to pass values already clamped to BoundsFor; the controller
// re-clamps only when the quota itself changes.
func (c *Controller) SetResource(dim Dimension, value int) {
	c.mu.Lock()
	switch dim {
	case DimMemory:
		c.draft.Memory = value
	case DimDisk:
		c.draft.Disk = value
	case DimCPU:
		c.draft.CPU = value
	case DimDatabases:
		c.draft.Databases = value
	case DimAllocations:
		c.draft.Allocations = value
	}
	c.mu.Unlock()
	c.changed()
}

// SelectEgg records the chosen software image by public identifier.
func (c *Controller) SelectEgg(eggID int) {
	c.mu.Lock()
	c.draft.EggID = eggID
	c.mu.Unlock()
	c.changed()
}

// SelectNode records the chosen deployment target by public identifier.
func (c *Controller) SelectNode(nodeID int) {
	c.mu.Lock()
	c.draft.NodeID = nodeID
	c.mu.Unlock()
	c.changed()
}

// CanProceed reports whether the gate for the given step holds.
func (c *Controller) CanProceed(step Step) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canProceed(step)
}

// Advance moves to the next step if the current step's gate holds.
// It reports whether the step changed. At the last step it is a no-op;
// submission is a separate action.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	if c.step == lastStep || !c.canProceed(c.step) {
		c.mu.Unlock()
		return false
	}

	c.step++
	c.mu.Unlock()
	c.changed()
	return true
}

// Retreat moves to the previous step. It never re-validates and never
// touches the draft. At the first step it is a no-op.
func (c *Controller) Retreat() bool {
	c.mu.Lock()
	if c.step == firstStep {
		c.mu.Unlock()
		return false
	}

	c.step--
	c.mu.Unlock()
	c.changed()
	return true
}

// RetryQuota re-runs the quota fetch after a failure.
func (c *Controller) RetryQuota() { c.quota.Retry() }

// RetryEggs re-runs the software catalog fetch after a failure.
func (c *Controller) RetryEggs() { c.eggs.Retry() }

// RetryNodes re-runs the node catalog fetch after a failure.
func (c *Controller) RetryNodes() { c.nodes.Retry() }

// Submit sends the draft to the panel. Legal only on the last step with
// its gate held; a submit while another is in flight returns
// ErrSubmitBusy and leaves the retained failure reason alone. On failure
// the reason is retained, the wizard stays on the last step, and the
// draft is untouched so the user can retry.
func (c *Controller) Submit() (api.Server, error) {
	c.mu.Lock()
	if c.step != lastStep || !c.canProceed(lastStep) {
		c.mu.Unlock()
		return api.Server{}, ErrStepBlocked
	}

	req := c.draft.request()
	c.mu.Unlock()

	server, err := c.submitter.Submit(req)

	c.mu.Lock()
	switch {
	case errors.Is(err, ErrSubmitBusy):
		// Rejected duplicate; the first call will report the outcome.
	case err != nil:
		c.submitErr = err
	default:
		c.submitErr = nil
		c.handle = server.Identifier
	}
	c.mu.Unlock()
	c.changed()

	return server, err
}

// canProceed evaluates a step gate. Callers hold c.mu.
//
// The first step's gate also requires the quota to have resolved: the
// resources step must never be entered against a missing or partial
// quota, and a quota that forbids creation blocks everything.
func (c *Controller) canProceed(step Step) bool {
	switch step {
	case StepDetails:
		snap := c.quota.Get()
		if snap.State != LoadReady || !CanCreate(snap.Value) {
			return false
		}
		return strings.TrimSpace(c.draft.Name) != ""
	case StepResources:
		return c.draft.Memory > 0 && c.draft.Disk > 0 && c.draft.CPU > 0
	case StepSoftware:
		return c.draft.EggID != 0
	case StepNode:
		return c.draft.NodeID != 0
	}
	return false
}

// onQuotaChange re-clamps the draft whenever a quota arrives, so a
// reload with smaller caps can never leave a previously chosen value
// out of range.
func (c *Controller) onQuotaChange() {
	snap := c.quota.Get()
	if snap.State == LoadReady {
		c.mu.Lock()
		c.reclamp(snap.Value)
		c.mu.Unlock()
	}

	c.changed()
}

// reclamp pulls every resource field into its legal range. Callers hold c.mu.
func (c *Controller) reclamp(quota api.Quota) {
	c.draft.Memory = BoundsFor(quota, DimMemory).Clamp(c.draft.Memory)
	c.draft.Disk = BoundsFor(quota, DimDisk).Clamp(c.draft.Disk)
	c.draft.CPU = BoundsFor(quota, DimCPU).Clamp(c.draft.CPU)
	c.draft.Databases = BoundsFor(quota, DimDatabases).Clamp(c.draft.Databases)
	c.draft.Allocations = BoundsFor(quota, DimAllocations).Clamp(c.draft.Allocations)
}

func (c *Controller) changed() {
	c.mu.Lock()
	fn := c.notify
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}
