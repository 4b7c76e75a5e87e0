package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/auth"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/course"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/request"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/oauth"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Authorization
	case errors.Is(err, user.ErrAccessDenied),
		errors.Is(err, course.ErrNotCourseRecipient):
		Forbidden(w, "Access Denied")

	// Authentication
	case errors.Is(err, user.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token missing")
	case errors.Is(err, auth.ErrGoogleAccountNotRegistered):
		Unauthorized(w, "No account is registered for this Google email")
	case errors.Is(err, oauth.ErrEmailNotVerified):
		Unauthorized(w, "Google email is not verified")
	case errors.Is(err, auth.ErrGoogleSignInDisabled):
		NotFound(w, "Google sign-in is not configured")

	// Not found
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, course.ErrCourseNotFound):
		NotFound(w, "Course not found")
	case errors.Is(err, course.ErrModuleNotFound):
		NotFound(w, "Module not found")
	case errors.Is(err, request.ErrRequestNotFound):
		NotFound(w, "Request not found")

	// Conflicts
	case errors.Is(err, request.ErrRequestAlreadyProcessed):
		Conflict(w, "Request has already been processed")
	case errors.Is(err, user.ErrUsernameExists):
		Conflict(w, "Username is already taken")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email is already taken")

	case errors.Is(err, auth.ErrRegistrationFailed):
		InternalServerError(w, "Registration failed. Please try again.")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
