package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

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

func newTestUseCase() (*UseCase, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	return New(users, sessions, time.Hour, nil), users, sessions
}

func TestRegisterThenLogin(t *testing.T) {
	uc, users, sessions := newTestUseCase()
	ctx := context.Background()

	registered, err := uc.Register(ctx, "alice", "a@x.com", "p1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.ID == 0 {
		t.Fatal("expected an assigned user id")
	}
	if registered.PasswordHash == "p1" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(registered.PasswordHash), []byte("p1")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	user, session, err := uc.Login(ctx, "a@x.com", "p1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("logged in as user %d, want %d", user.ID, registered.ID)
	}
	if session.UserID != registered.ID {
		t.Fatalf("session bound to user %d, want %d", session.UserID, registered.ID)
	}
	if _, ok := sessions.sessions[session.ID]; !ok {
		t.Fatal("session not persisted")
	}

	current, err := uc.CurrentUser(ctx, session.ID)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if current.Username != "alice" {
		t.Fatalf("current user %q, want alice", current.Username)
	}
	if len(users.users) != 1 {
		t.Fatalf("expected a single user row, have %d", len(users.users))
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	uc, users, _ := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.Register(ctx, "alice", "a@x.com", "p1"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := uc.Register(ctx, "alice", "other@x.com", "p2")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("got %v, want ErrUsernameTaken", err)
	}
	if len(users.users) != 1 {
		t.Fatalf("user row count changed: %d", len(users.users))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, users, _ := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.Register(ctx, "alice", "a@x.com", "p1"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := uc.Register(ctx, "bob", "a@x.com", "p2")
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("got %v, want ErrEmailTaken", err)
	}
	if len(users.users) != 1 {
		t.Fatalf("user row count changed: %d", len(users.users))
	}
}

func TestRegisterMissingFields(t *testing.T) {
	uc, _, _ := newTestUseCase()
	if _, err := uc.Register(context.Background(), "alice", "", "p1"); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("got %v, want ErrInvalidPayload", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.Register(ctx, "alice", "a@x.com", "p1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, wrongPassword := uc.Login(ctx, "a@x.com", "wrong")
	_, _, unknownEmail := uc.Login(ctx, "nobody@x.com", "p1")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: got %v, want ErrInvalidCredentials", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	uc, _, _ := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.Register(ctx, "alice", "a@x.com", "p1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, session, err := uc.Login(ctx, "a@x.com", "p1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := uc.Logout(ctx, session.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := uc.CurrentUser(ctx, session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound after logout", err)
	}
}

func TestCurrentUserExpiredSession(t *testing.T) {
	uc, _, sessions := newTestUseCase()
	ctx := context.Background()

	if _, err := uc.Register(ctx, "alice", "a@x.com", "p1"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	stale := &domain.Session{
		ID:        "stale",
		UserID:    1,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	sessions.sessions[stale.ID] = stale

	if _, err := uc.CurrentUser(ctx, stale.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("got %v, want ErrSessionNotFound for expired session", err)
	}
	if _, ok := sessions.sessions[stale.ID]; ok {
		t.Fatal("expired session should be revoked on sight")
	}
}
