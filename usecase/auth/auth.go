package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/owgcode2202/todoapp/domain"
	"github.com/owgcode2202/todoapp/repository"
)

type UseCase struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, sessionTTL time.Duration, logger *zap.Logger) *UseCase {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register creates a new account with a bcrypt-hashed password. A username or
// email collision surfaces as domain.ErrUserExists with nothing persisted.
func (uc *UseCase) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidPayload
	}

	// Pre-checks give a precise message; the unique constraints still back
	// them up against concurrent registrations.
	if _, err := uc.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.WrapError(domain.ErrCodeInternal, "registration failed", err)
	}
	if _, err := uc.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.WrapError(domain.ErrCodeInternal, "registration failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInternal, "failed to hash password", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		uc.logger.Error("user registration failed", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeInternal, "registration failed", err)
	}
	return user, nil
}

// Login verifies the credentials and opens a session. Unknown email and wrong
// password both yield domain.ErrInvalidCredentials so neither case reveals
// whether the account exists.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*domain.User, *domain.Session, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.sessionTTL),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout revokes the session, returning the client to anonymous.
func (uc *UseCase) Logout(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

// CurrentUser resolves a session id to its user. Missing and expired sessions
// both report domain.ErrSessionNotFound; expired ones are revoked on sight.
func (uc *UseCase) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return uc.users.GetByID(ctx, session.UserID)
}
