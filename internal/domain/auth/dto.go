package auth

import (
	"strings"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
)

type RegisterRequest struct {
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
	AdminCode       string `json:"admin_code,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	// Username
	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	} else if len(r.Username) > 150 {
		errs.Add("username", "username must not exceed 150 characters")
	} else if !validator.IsAlphanumeric(r.Username) {
		errs.Add("username", "username should only contain letters and numbers")
	}

	// Names
	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name is required")
	} else if !validator.IsAlpha(r.FirstName) {
		errs.Add("first_name", "first name should only contain alphabetic characters")
	}
	if validator.IsEmpty(r.LastName) {
		errs.Add("last_name", "last_name is required")
	} else if !validator.IsAlpha(r.LastName) {
		errs.Add("last_name", "last name should only contain alphabetic characters")
	}

	// Email
	email := strings.TrimSpace(r.Email)
	if email == "" {
		errs.Add("email", "email is required")
	} else if len(email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(email) {
		errs.Add("email", "email must be a valid email address")
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) > 255 {
		errs.Add("password", "password must not exceed 255 characters")
	} else if msg := validator.PasswordWeakness(r.Password); msg != "" {
		errs.Add("password", msg)
	}
	if validator.IsEmpty(r.ConfirmPassword) {
		errs.Add("confirm_password", "confirm_password is required")
	} else if r.ConfirmPassword != r.Password {
		errs.Add("confirm_password", "password and confirm_password do not match")
	}

	// Role
	if validator.IsEmpty(r.Role) {
		errs.Add("role", "role is required")
	} else if !user.Role(r.Role).IsValid() {
		errs.Add("role", "role must be one of admin, manager, employee")
	} else if user.Role(r.Role) == user.RoleAdmin && validator.IsEmpty(r.AdminCode) {
		errs.Add("admin_code", "admin_code is required for the admin role")
	}

	return errs.Err()
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Username) {
		errs.Add("username", "username is required")
	} else if len(r.Username) > 150 {
		errs.Add("username", "username must not exceed 150 characters")
	}

	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) > 255 {
		errs.Add("password", "password must not exceed 255 characters")
	}

	return errs.Err()
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (r *RefreshTokenRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RefreshToken) {
		errs.Add("refresh_token", "refresh_token is required")
	} else if len(r.RefreshToken) > 1024 {
		errs.Add("refresh_token", "refresh_token must not exceed 1024 characters")
	}

	return errs.Err()
}

type SessionTrackingRequest struct {
	UserAgent string
	IPAddress string
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AccessTokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
}
