package ports

import (
	"context"

	"github.com/agrovia/farm-system/internal/core/domain"
)

// CreateUserInput carries the data an admin or manager supplies when
// provisioning an account with an explicit role.
type CreateUserInput struct {
	Names     string
	Email     string
	Password  string
	Phone     string
	Gender    string
	Role      string
	ManagedBy *int64
}

// UserService defines account management use cases.
type UserService interface {
	// CreateUser provisions an account with any valid role. Reserved for
	// authenticated admin/manager callers.
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
	// DeactivateUser flips is_active off; user rows are never deleted.
	DeactivateUser(ctx context.Context, id int64) (*domain.User, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)
}
