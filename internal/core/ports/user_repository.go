package ports

import (
	"context"

	"github.com/agrovia/farm-system/internal/core/domain"
)

// UserFilter carries the optional filters for listing users.
type UserFilter struct {
	Role     string // optional: filter by role
	IsActive *bool  // optional: filter by active flag
	Gender   string // optional: filter by gender
}

// UserPatch is a typed partial update for a user row. Nil fields are left
// untouched, giving compile-time exhaustiveness over the updatable columns.
type UserPatch struct {
	Names        *string
	Email        *string
	PasswordHash *string
	Phone        *string
	Gender       *string
	Role         *string
	IsActive     *bool
	ManagedBy    *int64
	PhotoURL     *string
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Names == nil && p.Email == nil && p.PasswordHash == nil &&
		p.Phone == nil && p.Gender == nil && p.Role == nil &&
		p.IsActive == nil && p.ManagedBy == nil && p.PhotoURL == nil
}

// UserRepository defines persistence operations for users, including the
// scoring core's user-store contract: cached score/rating writes, active-user
// listings by role, and the manager→farmer team relation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
	PhoneExists(ctx context.Context, phone string) (bool, error)

	// UpdatePerformance writes the cached score/rating onto the user row and
	// returns the updated identity fields.
	UpdatePerformance(ctx context.Context, id int64, score int, rating domain.Rating) (*domain.User, error)
	// ListActiveIDsByRole returns the ids of all active users with the role.
	ListActiveIDsByRole(ctx context.Context, role string) ([]int64, error)
	// ListTeamFarmerIDs returns the ids of active farmers managed by managerID.
	ListTeamFarmerIDs(ctx context.Context, managerID int64) ([]int64, error)
}
