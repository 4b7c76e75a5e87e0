package user

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

const (
	generatedPasswordLength = 10
	usernameAttempts        = 20
	alphanumeric            = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type UserServiceImpl struct {
	user.UserRepository
	// randInt returns a uniform value in [0, n).
	randInt func(n int) (int, error)
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
		randInt:        cryptoRandInt,
	}
}

func cryptoRandInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

func (s *UserServiceImpl) Me(ctx context.Context, actor user.Principal) (user.UserResponse, error) {
	if !actor.IsAuthenticated() {
		return user.UserResponse{}, user.ErrUnauthenticated
	}
	u, err := s.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u.ToResponse(), nil
}

// GenerateCredentials creates an employee account with a random username
// suffix and password. The plain password is returned once.
func (s *UserServiceImpl) GenerateCredentials(ctx context.Context, actor user.Principal, req user.GenerateCredentialsRequest) (user.GeneratedCredentials, error) {
	if err := user.Require(actor, user.ActionGenerateCredentials); err != nil {
		return user.GeneratedCredentials{}, err
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return user.GeneratedCredentials{}, err
	}
	email := validator.NormalizeEmail(req.Email)

	taken, err := s.ExistsByEmail(ctx, email)
	if err != nil {
		return user.GeneratedCredentials{}, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return user.GeneratedCredentials{}, validator.NewFieldError("email", "Email is already taken. Please try another one.")
	}

	username, err := s.uniqueUsername(ctx, strings.ToLower(req.FirstName)+"."+strings.ToLower(req.LastName))
	if err != nil {
		return user.GeneratedCredentials{}, err
	}
	password, err := s.randomPassword()
	if err != nil {
		return user.GeneratedCredentials{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.GeneratedCredentials{}, fmt.Errorf("%w: %v", user.ErrPasswordHashFailed, err)
	}
	hashed := string(hash)

	_, err = s.Create(ctx, user.User{
		Username:     username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: &hashed,
		Role:         user.RoleEmployee,
	})
	if err != nil {
		return user.GeneratedCredentials{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user.GeneratedCredentials{Username: username, Password: password}, nil
}

// uniqueUsername appends a random 100..999 suffix to base until it is free.
func (s *UserServiceImpl) uniqueUsername(ctx context.Context, base string) (string, error) {
	for i := 0; i < usernameAttempts; i++ {
		n, err := s.randInt(900)
		if err != nil {
			return "", fmt.Errorf("failed to generate username: %w", err)
		}
		candidate := fmt.Sprintf("%s%d", base, 100+n)
		exists, err := s.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check username: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", user.ErrUsernameExists
}

func (s *UserServiceImpl) randomPassword() (string, error) {
	b := make([]byte, generatedPasswordLength)
	for i := range b {
		n, err := s.randInt(len(alphanumeric))
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		b[i] = alphanumeric[n]
	}
	return string(b), nil
}

// CreateUser creates an account directly. It is used by operator tooling and
// skips the admin registration code.
func (s *UserServiceImpl) CreateUser(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}
	email := validator.NormalizeEmail(req.Email)

	exists, err := s.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return user.User{}, user.ErrUsernameExists
	}
	exists, err = s.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.User{}, user.ErrUserEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("%w: %v", user.ErrPasswordHashFailed, err)
	}
	hashed := string(hash)

	created, err := s.Create(ctx, user.User{
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: &hashed,
		Role:         user.Role(req.Role),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// ResetPassword sets a new password for the account matching usernameOrEmail.
func (s *UserServiceImpl) ResetPassword(ctx context.Context, usernameOrEmail, password string) error {
	if msg := validator.PasswordWeakness(password); msg != "" {
		return validator.NewFieldError("password", msg)
	}

	u, err := s.GetByUsername(ctx, usernameOrEmail)
	if errors.Is(err, pgx.ErrNoRows) {
		u, err = s.GetByEmail(ctx, usernameOrEmail)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", user.ErrPasswordHashFailed, err)
	}
	return s.UpdatePassword(ctx, u.ID, string(hash))
}
