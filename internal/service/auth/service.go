package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/auth"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/jwt"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	txManager database.TxManager
	user.UserRepository
	jwt.Service
	auth.RefreshTokenStore
	adminCode string
}

func NewAuthService(txManager database.TxManager, userRepository user.UserRepository, jwtService jwt.Service, tokenStore auth.RefreshTokenStore, adminRegistrationCode string) auth.AuthService {
	return &AuthServiceImpl{
		txManager:         txManager,
		UserRepository:    userRepository,
		Service:           jwtService,
		RefreshTokenStore: tokenStore,
		adminCode:         adminRegistrationCode,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", user.ErrPasswordHashFailed, err)
	}
	return string(hash), nil
}

// issueTokens creates an access/refresh pair and persists the refresh token.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var (
		tokens auth.TokenResponse
		err    error
	)
	tokens.AccessToken, tokens.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(u)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokens.RefreshToken, tokens.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}
	if err := a.CreateRefreshToken(ctx, u.ID, tokens.RefreshToken, tokens.RefreshTokenExpiresIn, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}
	return tokens, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	role := user.Role(req.Role)
	if role == user.RoleAdmin && subtle.ConstantTimeCompare([]byte(req.AdminCode), []byte(a.adminCode)) != 1 {
		return auth.TokenResponse{}, validator.NewFieldError("admin_code", "Invalid admin code")
	}

	email := validator.NormalizeEmail(req.Email)

	var errs validator.ValidationErrors
	exists, err := a.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		errs.Add("username", "Username is already taken. Please try another one.")
	}
	exists, err = a.ExistsByEmail(ctx, email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		errs.Add("email", "Email is already taken. Please try another one.")
	}
	if err := errs.Err(); err != nil {
		return auth.TokenResponse{}, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	var tokens auth.TokenResponse
	err = a.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err := a.UserRepository.Create(txCtx, user.User{
			Username:     req.Username,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        email,
			PasswordHash: &hash,
			Role:         role,
		})
		if err != nil {
			return err
		}
		tokens, err = a.issueTokens(txCtx, created, session)
		return err
	})
	if err != nil {
		slog.Error("registration failed", "username", req.Username, "error", err)
		return auth.TokenResponse{}, auth.ErrRegistrationFailed
	}

	return tokens, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData, session)
}

// LoginWithGoogle signs in an existing account by its Google email. Accounts
// are never created here since roles are chosen at registration.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.GetByEmail(ctx, validator.NormalizeEmail(googleEmail))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, auth.ErrGoogleAccountNotRegistered
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user data by email: %w", err)
	}

	return a.issueTokens(ctx, userData, session)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return auth.ErrRefreshTokenCookieEmpty
	}
	if err := a.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if typ, _ := token.Get("type"); typ != jwt.TokenTypeRefresh {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userID, revoked, err := a.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	accessToken, expiresAt, err := a.GenerateAccessToken(userData)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.AccessTokenResponse{AccessToken: accessToken, AccessTokenExpiresIn: expiresAt}, nil
}
