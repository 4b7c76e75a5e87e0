package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		// First message per field wins.
		if _, ok := result[err.Field]; !ok {
			result[err.Field] = err.Message
		}
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns v as an error, or nil when v is empty.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// NewFieldError builds a single-field ValidationErrors.
func NewFieldError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// NormalizeEmail trims and lower-cases an address so assignment lists and
// user records compare equal.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UUIDv7 regex: version 7 (the 15th character must be '7'), all lowercase hex digits.
var uuidv7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// UUIDv7 validation
func IsValidUUID(uuid string) bool {
	return uuidv7Regex.MatchString(strings.ToLower(uuid))
}

var (
	alphaRegex        = regexp.MustCompile(`^[A-Za-z]+$`)
	alphanumericRegex = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// IsAlpha reports whether s is non-empty and only ASCII letters.
func IsAlpha(s string) bool {
	return alphaRegex.MatchString(s)
}

// IsAlphanumeric reports whether s is non-empty and only ASCII letters and digits.
func IsAlphanumeric(s string) bool {
	return alphanumericRegex.MatchString(s)
}

const passwordSpecialChars = `!@#$%^&*(),.?":{}|<>`

// PasswordWeakness returns the first unmet password rule, or "" when the
// password is strong enough.
func PasswordWeakness(password string) string {
	if len(password) < 8 {
		return "password must be at least 8 characters long"
	}
	var hasDigit, hasUpper, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
		if strings.ContainsRune(passwordSpecialChars, r) {
			hasSpecial = true
		}
	}
	switch {
	case !hasDigit:
		return "password must contain at least one digit"
	case !hasUpper:
		return "password must contain at least one uppercase letter"
	case !hasLower:
		return "password must contain at least one lowercase letter"
	case !hasSpecial:
		return "password must contain at least one special character"
	}
	return ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
