package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tickethub/ticketing-api/internal/auth/password"
	"github.com/tickethub/ticketing-api/internal/auth/token"
	"github.com/tickethub/ticketing-api/internal/core/domain"
	"github.com/tickethub/ticketing-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "u" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func newTestAuthService(t *testing.T) (*AuthService, *stubUserRepo) {
	t.Helper()
	codec, err := token.NewCodec(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
	})
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	repo := newStubUserRepo()
	svc := NewAuthService(repo, password.New(bcrypt.MinCost), codec, zerolog.Nop())
	return svc, repo
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "alex@example.com",
		Password: "pw123",
		FullName: "Alex Morgan",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role USER, got %s", user.Role)
	}
	if user.PasswordHash == "pw123" {
		t.Fatalf("expected password to be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	cases := []ports.RegisterInput{
		{Email: "", Password: "pw", FullName: "A"},
		{Email: "a@b.c", Password: "", FullName: "A"},
		{Email: "a@b.c", Password: "pw", FullName: ""},
		{Email: "a@b.c", Password: "pw", FullName: "A", Role: "SUPERUSER"},
	}
	for i, in := range cases {
		if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
}

func TestAuthService_Register_NormalizesRole(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "admin@example.com",
		Password: "pw123",
		FullName: "Admin",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("expected role normalized to ADMIN, got %s", user.Role)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _ := newTestAuthService(t)
	in := ports.RegisterInput{Email: "bob@example.com", Password: "pw", FullName: "Bob"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email:    "carol@example.com",
		Password: "s3cret",
		FullName: "Carol",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	pair, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", pair)
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatalf("access and refresh tokens must differ")
	}

	// The pair is immediately usable on the refresh path.
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
}

func TestAuthService_Login_UniformFailure(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "dave@example.com", Password: "goodpass", FullName: "Dave",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown email yield the identical error.
	_, wrongPass := svc.Login(context.Background(), "dave@example.com", "badpass")
	_, unknown := svc.Login(context.Background(), "ghost@example.com", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, repo := newTestAuthService(t)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Email: "erin@example.com", Password: "pw123", FullName: "Erin",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	pair, err := svc.Login(context.Background(), "erin@example.com", "pw123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	access, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if access == "" {
		t.Fatalf("expected a new access token")
	}

	// An access token is not accepted on the refresh path.
	if _, err := svc.Refresh(context.Background(), pair.AccessToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for access token, got %v", err)
	}

	// A deleted principal cannot renew.
	delete(repo.users, user.ID)
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for deleted user, got %v", err)
	}
}
