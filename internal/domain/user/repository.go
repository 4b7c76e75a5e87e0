package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// UserService exposes account operations outside of authentication.
type UserService interface {
	Me(ctx context.Context, actor Principal) (UserResponse, error)
	GenerateCredentials(ctx context.Context, actor Principal, req GenerateCredentialsRequest) (GeneratedCredentials, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (User, error)
	ResetPassword(ctx context.Context, usernameOrEmail, password string) error
}
