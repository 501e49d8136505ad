package commands

import (
	"context"

	"taskboard/internal/service"
	"taskboard/internal/store"
	"taskboard/internal/task"
)

// loadStore fetches every task into a fresh snapshot.
func loadStore(ctx context.Context, svc service.Service) (*store.Store, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	s := store.New()
	s.Load(tasks)
	return s, nil
}

// findTask fetches the task list and returns the task with the given id.
// A missing task is reported as service.ErrNotFound.
func findTask(ctx context.Context, svc service.Service, id int64) (task.Task, error) {
	s, err := loadStore(ctx, svc)
	if err != nil {
		return task.Task{}, err
	}
	t, ok := s.Lookup(id)
	if !ok {
		return task.Task{}, service.ErrNotFound
	}
	return t, nil
}
