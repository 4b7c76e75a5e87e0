package notification

import (
	"context"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
)

// Service defines the notification service interface
type Service interface {
	GetNotifications(ctx context.Context, actor user.Principal) (NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, actor user.Principal) (int, error)
	MarkAsRead(ctx context.Context, actor user.Principal, courseID string) error
}

// ScopeFor builds the notification scope of actor.
func ScopeFor(actor user.Principal) Scope {
	return Scope{
		UserID:     actor.ID,
		Email:      actor.Email,
		AllCourses: actor.SeesAllCourses(),
	}
}
