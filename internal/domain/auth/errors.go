package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("invalid username or password")
	ErrInvalidToken               = errors.New("invalid or expired token")
	ErrTokenExpired               = errors.New("token has expired")
	ErrRefreshTokenRevoked        = errors.New("refresh token has been revoked")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")
	ErrRegistrationFailed         = errors.New("registration failed, please try again")
	ErrGoogleAccountNotRegistered = errors.New("no account is registered for this google email")
	ErrGoogleSignInDisabled       = errors.New("google sign-in is not configured")
	ErrGoogleAccessDeniedByUser   = errors.New("google access denied by user")
	ErrStateCookieEmpty           = errors.New("state cookie is empty")
	ErrStateParamEmpty            = errors.New("state parameter is empty")
	ErrStateMismatch              = errors.New("state mismatch")
	ErrCodeValueEmpty             = errors.New("code value is empty")
)
