package repository

import (
	"context"
	"errors"

	"taskapi/internal/domain"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// TaskRepository exposes persistence operations for Task records.
//
// UpdateOwned and DeleteOwned only touch the row when both id and owner match,
// returning ErrNotFound otherwise.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) error
	Get(ctx context.Context, id string) (*domain.Task, error)
	ListByOwner(ctx context.Context, ownerID string, page domain.Page) ([]domain.Task, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	UpdateOwned(ctx context.Context, id, ownerID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteOwned(ctx context.Context, id, ownerID string) error
}
