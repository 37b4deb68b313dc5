package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

func TestCreateUser_ProvisionsPrivilegedRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	managerID := int64(3)
	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Names:     "Carla Mendez",
		Email:     "carla@farm.test",
		Password:  "secret99",
		Role:      domain.RoleManager,
		ManagedBy: &managerID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleManager {
		t.Fatalf("role = %s, want manager", user.Role)
	}
	if user.ManagedBy == nil || *user.ManagedBy != managerID {
		t.Fatalf("managed_by = %v, want %d", user.ManagedBy, managerID)
	}
	if !user.IsActive {
		t.Fatalf("new user not active")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret99")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestCreateUser_DefaultsToFarmer(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	user, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Names:    "Dan",
		Email:    "dan@farm.test",
		Password: "secret99",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleFarmer {
		t.Fatalf("role = %s, want farmer default", user.Role)
	}
	if user.PerformanceRating != domain.RatingFair {
		t.Fatalf("rating = %s, want fair", user.PerformanceRating)
	}
}

func TestCreateUser_InvalidRole(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	_, err := svc.CreateUser(context.Background(), ports.CreateUserInput{
		Names:    "Eve",
		Email:    "eve@farm.test",
		Password: "secret99",
		Role:     "superuser",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
