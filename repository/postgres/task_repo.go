package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owgcode2202/todoapp/domain"
	"github.com/owgcode2202/todoapp/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO tasks (owner_id, content)
	VALUES ($1, $2)
	RETURNING id, completed, created_at
	`

	return r.pool.QueryRow(ctx, query,
		task.OwnerID,
		task.Content,
	).Scan(&task.ID, &task.Completed, &task.CreatedAt)
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	const query = `
	SELECT id, owner_id, content, completed, created_at
	FROM tasks
	WHERE owner_id = $1
	ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(&task.ID, &task.OwnerID, &task.Content, &task.Completed, &task.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	const query = `
	SELECT id, owner_id, content, completed, created_at
	FROM tasks
	WHERE id = $1
	`
	var task domain.Task
	err := r.pool.QueryRow(ctx, query, id).Scan(&task.ID, &task.OwnerID, &task.Content, &task.Completed, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) UpdateContent(ctx context.Context, id int64, content string) error {
	const query = `UPDATE tasks SET content = $2 WHERE id = $1`
	return r.exec(ctx, query, id, content)
}

func (r *taskRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	const query = `UPDATE tasks SET completed = $2 WHERE id = $1`
	return r.exec(ctx, query, id, completed)
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM tasks WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *taskRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
