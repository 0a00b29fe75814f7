package models

// Roles used across the application.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether value is one of the known roles.
func ValidRole(value string) bool {
	return value == RoleAdmin || value == RoleUser
}

// User is the authoritative user record as stored in memory and in the
// mirrored JSON blob. Password is the plain demo secret and must never leave
// the repository/service layer in an outward projection.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"` // admin | user
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// SafeUser is the outward projection of a User: everything except the secret.
type SafeUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Safe returns the password-free projection of the record.
func (u User) Safe() SafeUser {
	return SafeUser{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
