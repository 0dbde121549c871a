package handler

import (
	"context"
	"sort"
	"time"

	"github.com/owgcode2202/todoapp/domain"
)

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type fakeSessionRepo struct {
	sessions map[string]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *fakeSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (r *fakeSessionRepo) Save(ctx context.Context, session *domain.Session) error {
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

type fakeTaskRepo struct {
	nextID int64
	tasks  map[int64]*domain.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*domain.Task)}
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) error {
	r.nextID++
	task.ID = r.nextID
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *fakeTaskRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Task, error) {
	owned := []domain.Task{}
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			owned = append(owned, *task)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].ID < owned[j].ID
		}
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})
	return owned, nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *fakeTaskRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Content = content
	return nil
}

func (r *fakeTaskRepo) SetCompleted(ctx context.Context, id int64, completed bool) error {
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Completed = completed
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}
