package view

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"taskboard/internal/reorder"
	"taskboard/internal/service"
	"taskboard/internal/store"
	"taskboard/internal/task"
)

// State is everything the front ends render from.
type State struct {
	Store  *store.Store
	Filter store.Filter
	Search string

	// Notice is the inline message shown next to the title input.
	Notice string

	// Err is the last failure, shown in place of a list update.
	Err error
}

// Event is one of the closed set of inputs the controller reacts to.
type Event interface {
	isEvent()
}

// FetchComplete carries the result of a fetch started with Controller.Fetch.
type FetchComplete struct {
	Ticket store.Ticket
	Tasks  []task.Task
	Err    error
}

// CreateRequested asks for a new task.
type CreateRequested struct {
	Input task.Input
}

// UpdateRequested asks to replace the editable fields of a task.
type UpdateRequested struct {
	ID    int64
	Input task.Input
}

// DeleteRequested asks to delete a task.
type DeleteRequested struct {
	ID int64
}

// DragComplete carries the full rendered order after a drop.
type DragComplete struct {
	Order []int64
}

// FilterChanged selects a status filter.
type FilterChanged struct {
	Filter store.Filter
}

// SearchChanged sets the title search term.
type SearchChanged struct {
	Term string
}

func (FetchComplete) isEvent()   {}
func (CreateRequested) isEvent() {}
func (UpdateRequested) isEvent() {}
func (DeleteRequested) isEvent() {}
func (DragComplete) isEvent()    {}
func (FilterChanged) isEvent()   {}
func (SearchChanged) isEvent()   {}

// Effect tells the front end what to do after an event was handled.
type Effect struct {
	// Refresh asks for a new fetch.
	Refresh bool

	// NeedsLogin reports an authentication failure. There is no recovery.
	NeedsLogin bool

	// Notice is an inline message (validation or create rejection).
	Notice string

	// Alert is a blocking message (update rejection).
	Alert string

	// Err is the underlying failure, nil on success.
	Err error
}

// Controller owns the view state and turns events into state transitions
// and service calls. Dispatch may be called from several goroutines.
type Controller struct {
	mu      sync.Mutex
	state   State
	dragged []int64 // optimistic order, held until the next applied fetch

	svc    service.Service
	orders *reorder.Submitter
	log    logrus.FieldLogger
}

// NewController returns a controller with an empty snapshot and the All filter.
// A nil log discards diagnostics.
func NewController(svc service.Service, log logrus.FieldLogger) *Controller {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Controller{
		state:  State{Store: store.New(), Filter: store.All},
		svc:    svc,
		orders: reorder.NewSubmitter(svc, log),
		log:    log,
	}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Fetch loads the task list under a new ticket. The result must be passed to
// Dispatch to take effect.
func (c *Controller) Fetch(ctx context.Context) FetchComplete {
	ticket := c.state.Store.Begin()
	tasks, err := c.svc.ListTasks(ctx)
	return FetchComplete{Ticket: ticket, Tasks: tasks, Err: err}
}

// Refresh fetches and applies the task list.
func (c *Controller) Refresh(ctx context.Context) Effect {
	return c.Dispatch(ctx, c.Fetch(ctx))
}

// Dispatch handles one event.
func (c *Controller) Dispatch(ctx context.Context, ev Event) Effect {
	switch ev := ev.(type) {
	case FetchComplete:
		return c.fetchComplete(ev)
	case CreateRequested:
		return c.create(ctx, ev)
	case UpdateRequested:
		return c.update(ctx, ev)
	case DeleteRequested:
		return c.delete(ctx, ev)
	case DragComplete:
		return c.dragComplete(ctx, ev)
	case FilterChanged:
		c.mu.Lock()
		c.state.Filter = ev.Filter
		c.dragged = nil
		c.mu.Unlock()
		return Effect{}
	case SearchChanged:
		c.mu.Lock()
		c.state.Search = ev.Term
		c.dragged = nil
		c.mu.Unlock()
		return Effect{}
	}
	return Effect{}
}

func (c *Controller) fetchComplete(ev FetchComplete) Effect {
	// Results older than the applied list are dropped, errors included.
	if ev.Ticket <= c.state.Store.Applied() {
		c.log.WithField("ticket", ev.Ticket).Debug("discarding stale fetch result")
		return Effect{}
	}

	if ev.Err != nil {
		if errors.Is(ev.Err, service.ErrUnauthorized) {
			return Effect{NeedsLogin: true, Err: ev.Err}
		}
		c.log.WithError(ev.Err).Error("fetching tasks failed")
		c.setErr(ev.Err)
		return Effect{Err: ev.Err}
	}

	if !c.state.Store.Apply(ev.Ticket, ev.Tasks) {
		c.log.WithField("ticket", ev.Ticket).Debug("discarding stale fetch result")
		return Effect{}
	}

	c.mu.Lock()
	c.dragged = nil
	c.state.Err = nil
	c.mu.Unlock()
	return Effect{}
}

func (c *Controller) create(ctx context.Context, ev CreateRequested) Effect {
	in := ev.Input.Normalize()
	if err := in.Validate(); err != nil {
		c.setNotice(err.Error())
		return Effect{Notice: err.Error(), Err: err}
	}
	c.setNotice("")

	if _, err := c.svc.CreateTask(ctx, in); err != nil {
		var rej *service.RejectedError
		if errors.As(err, &rej) {
			msg := rej.Message
			if msg == "" {
				msg = "create failed"
			}
			c.setNotice(msg)
			return Effect{Notice: msg, Err: err}
		}
		return c.failed("creating task failed", err)
	}
	return Effect{Refresh: true}
}

func (c *Controller) update(ctx context.Context, ev UpdateRequested) Effect {
	in := ev.Input.Normalize()
	if err := in.Validate(); err != nil {
		return Effect{Alert: err.Error(), Err: err}
	}

	if _, err := c.svc.UpdateTask(ctx, ev.ID, in); err != nil {
		var rej *service.RejectedError
		switch {
		case errors.As(err, &rej):
			return Effect{Alert: "update failed", Err: err}
		case errors.Is(err, service.ErrNotFound):
			return Effect{Alert: "task not found", Err: err, Refresh: true}
		}
		return c.failed("updating task failed", err)
	}
	return Effect{Refresh: true}
}

func (c *Controller) delete(ctx context.Context, ev DeleteRequested) Effect {
	if err := c.svc.DeleteTask(ctx, ev.ID); err != nil {
		var rej *service.RejectedError
		if errors.As(err, &rej) || errors.Is(err, service.ErrNotFound) {
			return Effect{Err: err, Refresh: true}
		}
		return c.failed("deleting task failed", err)
	}
	return Effect{Refresh: true}
}

func (c *Controller) dragComplete(ctx context.Context, ev DragComplete) Effect {
	if err := reorder.Validate(ev.Order); err != nil {
		return Effect{Err: err}
	}

	c.mu.Lock()
	c.dragged = slices.Clone(ev.Order)
	c.mu.Unlock()

	if err := c.orders.Submit(ctx, ev.Order); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return Effect{NeedsLogin: true, Err: err}
		}
		c.setErr(err)
		return Effect{Err: err}
	}
	return Effect{Refresh: true}
}

// failed handles transport-level failures: logged, no list update.
func (c *Controller) failed(msg string, err error) Effect {
	if errors.Is(err, service.ErrUnauthorized) {
		return Effect{NeedsLogin: true, Err: err}
	}
	c.log.WithError(err).Error(msg)
	c.setErr(err)
	return Effect{Err: err}
}

func (c *Controller) setNotice(msg string) {
	c.mu.Lock()
	c.state.Notice = msg
	c.mu.Unlock()
}

func (c *Controller) setErr(err error) {
	c.mu.Lock()
	c.state.Err = err
	c.mu.Unlock()
}

// Cards renders the current view. An order submitted by a drag is kept on
// screen until the next applied fetch, whether or not it was saved.
func (c *Controller) Cards(now time.Time) []Card {
	c.mu.Lock()
	filter, search := c.state.Filter, c.state.Search
	dragged := c.dragged
	c.mu.Unlock()

	cards := Render(c.state.Store.View(filter, search), now)
	if dragged != nil {
		arrange(cards, dragged)
	}
	return cards
}

// arrange sorts cards by their position in order. Cards missing from order
// keep their relative order after the ones present.
func arrange(cards []Card, order []int64) {
	pos := make(map[int64]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	slices.SortStableFunc(cards, func(a, b Card) int {
		pa, okA := pos[a.ID]
		pb, okB := pos[b.ID]
		switch {
		case okA && okB:
			return pa - pb
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
}

// Stats counts the snapshot per status.
func (c *Controller) Stats() store.Stats {
	return c.state.Store.Stats()
}

// Lookup returns a task from the snapshot.
func (c *Controller) Lookup(id int64) (task.Task, bool) {
	return c.state.Store.Lookup(id)
}

// Greeting returns the logged-in username, or "" when it cannot be fetched.
func (c *Controller) Greeting(ctx context.Context) string {
	u, err := c.svc.CurrentUser(ctx)
	if err != nil {
		c.log.WithError(err).Debug("fetching user failed")
		return ""
	}
	return u.Username
}
