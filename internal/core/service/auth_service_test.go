package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/agrovia/farm-system/internal/core/domain"
	"github.com/agrovia/farm-system/internal/core/ports"
)

const testSecret = "test-secret"

func seedUser(t *testing.T, repo *stubUserRepo, id int64, email, password string, active bool) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	repo.users[id] = &domain.User{
		ID:           id,
		Names:        "Seeded User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleFarmer,
		IsActive:     active,
	}
}

func TestRegister_DefaultsAndHashing(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Names:    "Ana Torres",
		Email:    "ana@farm.test",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleFarmer {
		t.Fatalf("role = %s, want farmer default", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("new user not active")
	}
	if user.PerformanceRating != domain.RatingFair {
		t.Fatalf("rating = %s, want fair", user.PerformanceRating)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("hunter22")) != nil {
		t.Fatalf("stored hash does not match password")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), ports.RegisterInput{Email: "x@farm.test"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegister_RejectsPrivilegedRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	for _, role := range []string{domain.RoleAdmin, domain.RoleManager, "superuser"} {
		_, err := svc.Register(context.Background(), ports.RegisterInput{
			Names:    "Bob",
			Email:    "bob@farm.test",
			Password: "secret99",
			Role:     role,
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %q: err = %v, want ErrForbidden", role, err)
		}
	}
}

func TestRegister_ExplicitFarmerRoleAllowed(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Names:    "Bob",
		Email:    "bob@farm.test",
		Password: "secret99",
		Role:     domain.RoleFarmer,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Role != domain.RoleFarmer {
		t.Fatalf("role = %s, want farmer", user.Role)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, 7, "ana@farm.test", "hunter22", true)
	svc := NewAuthService(repo, testSecret, time.Hour)

	token, user, err := svc.Login(context.Background(), "ana@farm.test", "hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("user id = %d, want 7", user.ID)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not parse: %v", err)
	}
	if id, _ := claims["user_id"].(float64); int64(id) != 7 {
		t.Fatalf("user_id claim = %v, want 7", claims["user_id"])
	}
	if claims["role"] != domain.RoleFarmer {
		t.Fatalf("role claim = %v", claims["role"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Fatalf("token has no expiry")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, 7, "ana@farm.test", "hunter22", true)
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ana@farm.test", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmailHidesExistence(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@farm.test", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	seedUser(t, repo, 7, "ana@farm.test", "hunter22", false)
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ana@farm.test", "hunter22")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
}
