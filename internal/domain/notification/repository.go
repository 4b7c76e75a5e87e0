package notification

import (
	"context"
)

// Scope selects which courses a recipient can be notified about.
type Scope struct {
	UserID string
	Email  string
	// AllCourses widens the scope to every course (admin, manager).
	AllCourses bool
}

// Repository defines the notification repository interface
type Repository interface {
	// ListUnread returns unread courses in scope, newest first.
	ListUnread(ctx context.Context, scope Scope) ([]Notification, error)
	GetUnreadCount(ctx context.Context, scope Scope) (int, error)
	// MarkAsRead is idempotent.
	MarkAsRead(ctx context.Context, courseID, userID string) error
}
