package domain

import "time"

const (
	RoleFarmer  = "farmer"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	return r == RoleFarmer || r == RoleManager || r == RoleAdmin
}

// User models an authenticated actor in the system. PerformanceScore and
// PerformanceRating are denormalized caches of the latest scoring run; the
// performance_scores history table remains the source of truth.
type User struct {
	ID                int64     `json:"user_id"`
	Names             string    `json:"names"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Phone             string    `json:"phone,omitempty"`
	Gender            string    `json:"gender,omitempty"`
	Role              string    `json:"role"`
	IsActive          bool      `json:"is_active"`
	ManagedBy         *int64    `json:"managed_by,omitempty"`
	PhotoURL          string    `json:"photo_url,omitempty"`
	PerformanceScore  int       `json:"performance_score"`
	PerformanceRating Rating    `json:"performance_rating"`
	CreatedAt         time.Time `json:"created_date"`
	UpdatedAt         time.Time `json:"updated_date"`
}
