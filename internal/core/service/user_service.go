package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

// UserService implements account management use cases.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// CreateUser provisions an account with an explicit role. Unlike public
// registration this path may mint managers and admins, so the handler keeps
// it behind admin/manager authorization.
func (s *UserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if input.Names == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleFarmer
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Names:             input.Names,
		Email:             input.Email,
		PasswordHash:      string(hash),
		Phone:             input.Phone,
		Gender:            input.Gender,
		Role:              role,
		IsActive:          true,
		ManagedBy:         input.ManagedBy,
		PerformanceRating: domain.RatingFair,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("role", created.Role).Msg("user provisioned")
	return created, nil
}

func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.repo.List(ctx, filter)
}

// UpdateUser applies a typed patch. A plaintext password arriving in the
// PasswordHash field is hashed here before it reaches the repository.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch ports.UserPatch) (*domain.User, error) {
	if patch.Empty() {
		return nil, domain.ErrEmptyPatch
	}
	if patch.Role != nil && !domain.ValidRole(*patch.Role) {
		return nil, domain.ErrInvalidCredentials
	}
	if patch.PasswordHash != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		patch.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", id).Msg("user updated")
	return updated, nil
}

// DeactivateUser flips is_active off; user rows are never deleted so the
// performance history keeps its foreign keys.
func (s *UserService) DeactivateUser(ctx context.Context, id int64) (*domain.User, error) {
	inactive := false
	return s.repo.Update(ctx, id, ports.UserPatch{IsActive: &inactive})
}

func (s *UserService) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return s.repo.PhoneExists(ctx, phone)
}
