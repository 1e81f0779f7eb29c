package domain

import "context"

type ContextKey string

const UserContextKey ContextKey = "user"

// Roles issued by the backend.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
	RoleBuyer  = "buyer"
)

type User struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Session is the client's record of the authenticated identity and its
// bearer credential.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type SignupForm struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"omitempty,oneof=admin seller buyer"`
}

// AuthResult is the backend's response to signup and login.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type AuthAPI interface {
	Signup(ctx context.Context, form SignupForm) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// IsPrivileged reports whether the role may perform catalog and slider
// mutations. Enforcement here is a convenience; the backend is the authority.
func IsPrivileged(role string) bool {
	return role == RoleAdmin || role == RoleSeller
}
