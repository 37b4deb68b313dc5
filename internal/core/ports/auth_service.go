package ports

import (
	"context"

	"github.com/agrovia/farm-system/internal/core/domain"
)

// RegisterInput carries the data needed to create an account. Role may only
// be empty or "farmer"; privileged accounts go through UserService.CreateUser.
type RegisterInput struct {
	Names    string
	Email    string
	Password string
	Phone    string
	Gender   string
	Role     string
}

// AuthService implements registration and login.
type AuthService interface {
	// Register creates a farmer account. Any other requested role is refused.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed JWT plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
