package models

type Role int

// UserRole constants
const (
	RoleGuest      Role = 0
	RoleNewUser    Role = 1
	RoleStudent    Role = 2
	RoleInstructor Role = 3
	RoleAdmin      Role = 4
)

// Valid reports whether the role is one of the persisted roles (guest is never stored)
func (r Role) Valid() bool {
	return r >= RoleNewUser && r <= RoleAdmin
}

// Actor represents the identity performing a request.
// A zero-value Actor is an unauthenticated guest.
type Actor struct {
	ID   int
	Role Role
}

// IsAuthenticated reports whether the actor carries a user identity
func (a Actor) IsAuthenticated() bool {
	return a.ID > 0
}

// User represents a user in the system
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialize password hash
	Role         Role   `json:"role"`
}

// UserListItem represents a user in admin list responses
type UserListItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// AddUserRequest represents an admin request to create a user
type AddUserRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Role  Role   `json:"role" validate:"required"`
}

// AddUserResponse carries the created user ID and the one-time temporary credential
type AddUserResponse struct {
	ID           int    `json:"id"`
	TempPassword string `json:"tempPassword"`
}

// UpdateUserRoleRequest represents an admin request to change a user's role
type UpdateUserRoleRequest struct {
	Role Role `json:"role" validate:"required"`
}

// CompleteProfileRequest represents a new user's role choice
type CompleteProfileRequest struct {
	Role Role `json:"role" validate:"required"`
}
