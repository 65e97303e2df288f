package ports

import (
	"context"

	"github.com/tickethub/ticketing-api/internal/core/domain"
)

// RegisterInput carries a validated registration submission. The handler has
// already checked the confirm-password match; it is not re-checked here.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}
