// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"taskboard/internal/service"
	"taskboard/internal/task"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It follows the server's semantics: new tasks get order index 0 and
// Reorder assigns index i to ids[i], ignoring unknown ids.
type FakeService struct {
	mu     sync.Mutex
	tasks  []task.Task
	nextID int64
	user   service.User
	calls  map[string]int
	orders [][]int64

	// Now stamps CreatedAt on new tasks.
	Now func() time.Time

	// Error injection for testing
	ListErr    error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
	ReorderErr error
	UserErr    error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID: 1,
		user:   service.User{Username: "tester"},
		calls:  make(map[string]int),
		Now:    time.Now,
	}
}

// AddTask seeds a task and returns its id. Zero-valued CreatedAt is stamped.
func (f *FakeService) AddTask(t task.Task) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == 0 {
		t.ID = f.nextID
	}
	if t.ID >= f.nextID {
		f.nextID = t.ID + 1
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = f.Now()
	}
	f.tasks = append(f.tasks, t)
	return t.ID
}

// SetUser sets the user returned by CurrentUser.
func (f *FakeService) SetUser(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = service.User{Username: name}
}

// Calls returns how many times the named method was invoked.
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Orders returns every order submitted through Reorder.
func (f *FakeService) Orders() [][]int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.orders)
}

// Task returns the stored task with the given id.
func (f *FakeService) Task(id int64) (task.Task, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// ServerOrder returns the task ids sorted the way a client would display them.
func (f *FakeService) ServerOrder() []int64 {
	f.mu.Lock()
	sorted := slices.Clone(f.tasks)
	f.mu.Unlock()
	task.Sort(sorted)
	return task.IDs(sorted)
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["ListTasks"]++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]task.Task, len(f.tasks))
	for i, t := range f.tasks {
		out[i] = clone(t)
	}
	return out, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in task.Input) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CreateTask"]++
	if f.CreateErr != nil {
		return task.Task{}, f.CreateErr
	}

	zero := 0
	t := task.Task{
		ID:          f.nextID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedAt:   f.Now(),
		OrderIndex:  &zero,
	}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return clone(t), nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int64, in task.Input) (task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["UpdateTask"]++
	if f.UpdateErr != nil {
		return task.Task{}, f.UpdateErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			t.Title = in.Title
			t.Description = in.Description
			t.Status = in.Status
			t.DueDate = in.DueDate
			f.tasks[i] = t
			return clone(t), nil
		}
	}
	return task.Task{}, service.ErrNotFound
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["DeleteTask"]++
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = slices.Delete(f.tasks, i, i+1)
			return nil
		}
	}
	return service.ErrNotFound
}

// Reorder implements service.Service.
func (f *FakeService) Reorder(ctx context.Context, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["Reorder"]++
	if f.ReorderErr != nil {
		return f.ReorderErr
	}

	f.orders = append(f.orders, slices.Clone(ids))
	for i, id := range ids {
		for j := range f.tasks {
			if f.tasks[j].ID == id {
				idx := i
				f.tasks[j].OrderIndex = &idx
			}
		}
	}
	return nil
}

// CurrentUser implements service.Service.
func (f *FakeService) CurrentUser(ctx context.Context) (service.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["CurrentUser"]++
	if f.UserErr != nil {
		return service.User{}, f.UserErr
	}
	return f.user, nil
}

// clone copies t so callers cannot alias the fake's pointers.
func clone(t task.Task) task.Task {
	if t.DueDate != nil {
		d := *t.DueDate
		t.DueDate = &d
	}
	if t.OrderIndex != nil {
		i := *t.OrderIndex
		t.OrderIndex = &i
	}
	return t
}
