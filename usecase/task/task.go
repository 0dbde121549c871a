package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/owgcode2202/todoapp/domain"
	"github.com/owgcode2202/todoapp/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// ListMine returns the owner's tasks ordered by creation time ascending.
func (uc *UseCase) ListMine(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	return uc.tasks.ListByOwner(ctx, ownerID)
}

// Add creates a task owned by ownerID. Empty content is a client error.
func (uc *UseCase) Add(ctx context.Context, ownerID int64, content string) (*domain.Task, error) {
	if content == "" {
		return nil, domain.ErrInvalidPayload
	}
	task := &domain.Task{
		OwnerID: ownerID,
		Content: content,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		uc.logger.Error("task creation failed", zap.Int64("owner_id", ownerID), zap.Error(err))
		return nil, err
	}
	return task, nil
}

// Get fetches a task after checking it belongs to ownerID.
func (uc *UseCase) Get(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	return uc.owned(ctx, ownerID, taskID)
}

// Update replaces the task content. The task must exist and belong to ownerID.
func (uc *UseCase) Update(ctx context.Context, ownerID, taskID int64, content string) error {
	if content == "" {
		return domain.ErrInvalidPayload
	}
	if _, err := uc.owned(ctx, ownerID, taskID); err != nil {
		return err
	}
	return uc.tasks.UpdateContent(ctx, taskID, content)
}

// Toggle flips the completion flag. Same existence and ownership rules as Update.
func (uc *UseCase) Toggle(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	task, err := uc.owned(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}
	if err := uc.tasks.SetCompleted(ctx, taskID, !task.Completed); err != nil {
		return nil, err
	}
	task.Completed = !task.Completed
	return task, nil
}

// Delete removes the task permanently. Same existence and ownership rules as Update.
func (uc *UseCase) Delete(ctx context.Context, ownerID, taskID int64) error {
	if _, err := uc.owned(ctx, ownerID, taskID); err != nil {
		return err
	}
	return uc.tasks.Delete(ctx, taskID)
}

func (uc *UseCase) owned(ctx context.Context, ownerID, taskID int64) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.OwnerID != ownerID {
		return nil, domain.ErrNotOwner
	}
	return task, nil
}
