package repository

import (
	"context"

	"github.com/owgcode2202/todoapp/domain"
)

type UserRepository interface {
	// Create persists a new user and fills in the generated ID and
	// creation time. A username or email collision yields
	// domain.ErrUserExists without persisting anything.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
