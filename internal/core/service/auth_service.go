package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tickethub/ticketing-api/internal/auth/password"
	"github.com/tickethub/ticketing-api/internal/auth/token"
	"github.com/tickethub/ticketing-api/internal/core/domain"
	"github.com/tickethub/ticketing-api/internal/core/ports"
)

// dummyDigest is compared against when the email is unknown so the login path
// costs one bcrypt verification either way.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration, login, and refresh-token exchange.
type AuthService struct {
	users  ports.UserRepository
	hasher *password.Hasher
	codec  *token.Codec
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher *password.Hasher, codec *token.Codec, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, codec: codec, log: log}
}

// Register validates the submission, hashes the password, and persists the
// principal. No tokens are issued; the caller logs in afterwards.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" || in.FullName == "" {
		return nil, fmt.Errorf("%w: email, password, and full name are required", domain.ErrValidation)
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: digest,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues the access/refresh pair. Unknown
// email and wrong password both come back as ErrInvalidCredentials; the dummy
// comparison keeps the two paths indistinguishable by timing.
func (s *AuthService) Login(ctx context.Context, email, plaintext string) (*domain.TokenPair, error) {
	if email == "" || plaintext == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(plaintext, dummyDigest)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(plaintext, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return pair, nil
}

// Refresh exchanges a valid refresh token for a fresh access token. Refresh
// claims carry only the user id, so the principal is re-loaded to pick up its
// role; a deleted account cannot renew.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	access, err := s.codec.SignAccess(user.ID, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return access, nil
}

func (s *AuthService) issue(user *domain.User) (*domain.TokenPair, error) {
	access, err := s.codec.SignAccess(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := s.codec.SignRefresh(user.ID)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
