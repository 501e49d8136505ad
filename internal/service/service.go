// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"

	"taskboard/internal/task"
)

// Service is the remote task collaborator.
// Front ends and the view controller never talk HTTP directly.
type Service interface {
	// ListTasks returns every task of the current user, in server order.
	ListTasks(ctx context.Context) ([]task.Task, error)

	// CreateTask creates a task and returns it with server-assigned fields.
	CreateTask(ctx context.Context, in task.Input) (task.Task, error)

	// UpdateTask replaces the editable fields of task id.
	UpdateTask(ctx context.Context, id int64, in task.Input) (task.Task, error)

	// DeleteTask deletes task id.
	DeleteTask(ctx context.Context, id int64) error

	// Reorder overwrites the manual order: ids[i] gets order index i.
	// Submitting the same ids twice leaves the order unchanged.
	Reorder(ctx context.Context, ids []int64) error

	// CurrentUser returns the logged-in user.
	CurrentUser(ctx context.Context) (User, error)
}
