package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Creates courses, handles requests
	RoleManager  Role = "manager"  // Submits manager requests, tracks progress
	RoleEmployee Role = "employee" // Takes assigned courses
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleManager, RoleEmployee}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID           string
	Username     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal returns the identity used for authorization decisions.
func (u User) Principal() Principal {
	return Principal{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// ToResponse converts u to its API representation.
func (u User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
}

// Principal is the caller of an operation as carried in the access token.
type Principal struct {
	ID       string
	Username string
	Email    string
	Role     Role
}

// IsAuthenticated reports whether p identifies a real user with a known role.
func (p Principal) IsAuthenticated() bool {
	return p.ID != "" && p.Role.IsValid()
}

func (p Principal) IsAdmin() bool {
	return p.IsAuthenticated() && p.Role == RoleAdmin
}

func (p Principal) IsManager() bool {
	return p.IsAuthenticated() && p.Role == RoleManager
}

func (p Principal) IsEmployee() bool {
	return p.IsAuthenticated() && p.Role == RoleEmployee
}

// SeesAllCourses reports whether p may see every course regardless of assignment.
func (p Principal) SeesAllCourses() bool {
	return p.IsAdmin() || p.IsManager()
}
