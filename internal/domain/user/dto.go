package user

import (
	"strings"

	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateUserRequest is used by operator tooling to create an account
// directly, bypassing the admin registration code.
type CreateUserRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	} else if !validator.IsAlphanumeric(r.Username) {
		errs.Add("username", "username must be alphanumeric")
	}

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs.Add("email", "invalid email format")
	}

	if msg := validator.PasswordWeakness(r.Password); msg != "" {
		errs.Add("password", msg)
	}

	if !Role(r.Role).IsValid() {
		errs.Add("role", "role must be one of admin, manager, employee")
	}

	return errs.Err()
}

// GenerateCredentialsRequest asks for a throwaway employee account.
type GenerateCredentialsRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ApplyDefaults fills in the placeholder names used when none are provided.
func (r *GenerateCredentialsRequest) ApplyDefaults() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	if r.FirstName == "" {
		r.FirstName = "Employee"
	}
	if r.LastName == "" {
		r.LastName = "User"
	}
}

func (r *GenerateCredentialsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "invalid email format")
	}
	if !validator.IsAlpha(r.FirstName) {
		errs.Add("first_name", "first name should only contain alphabetic characters")
	}
	if !validator.IsAlpha(r.LastName) {
		errs.Add("last_name", "last name should only contain alphabetic characters")
	}

	return errs.Err()
}

// GeneratedCredentials is returned once; the plain password is never stored.
type GeneratedCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
