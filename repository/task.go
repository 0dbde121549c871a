package repository

import (
	"context"

	"github.com/owgcode2202/todoapp/domain"
)

type TaskRepository interface {
	// Create persists a new task and fills in the generated ID,
	// completion default and creation time.
	Create(ctx context.Context, task *domain.Task) error
	// ListByOwner returns the owner's tasks ordered by creation time
	// ascending. A user without tasks gets an empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error)
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	UpdateContent(ctx context.Context, id int64, content string) error
	SetCompleted(ctx context.Context, id int64, completed bool) error
	Delete(ctx context.Context, id int64) error
}
