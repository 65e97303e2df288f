package ports

import (
	"context"

	"github.com/tickethub/ticketing-api/internal/core/domain"
)

// UserRepository is the persistence boundary for principals. Implementations
// must translate uniqueness violations to domain.ErrEmailTaken and absent
// records to domain.ErrUserNotFound, and normalize the stored role through
// domain.ParseRole before returning.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
