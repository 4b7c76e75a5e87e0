package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/course"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/notification"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
)

// CourseLookup is the part of the course store needed to validate read markers.
type CourseLookup interface {
	GetByID(ctx context.Context, id string) (course.Course, error)
	IsRecipient(ctx context.Context, courseID, email string) (bool, error)
}

type service struct {
	repo    notification.Repository
	courses CourseLookup
}

// NewNotificationService creates the course notification service
func NewNotificationService(repo notification.Repository, courses CourseLookup) notification.Service {
	return &service{repo: repo, courses: courses}
}

// GetNotifications returns unread courses for actor, newest first
func (s *service) GetNotifications(ctx context.Context, actor user.Principal) (notification.NotificationListResponse, error) {
	if !actor.IsAuthenticated() {
		return notification.NotificationListResponse{}, user.ErrUnauthenticated
	}

	items, err := s.repo.ListUnread(ctx, notification.ScopeFor(actor))
	if err != nil {
		return notification.NotificationListResponse{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	resp := notification.NotificationListResponse{
		Notifications: make([]notification.NotificationResponse, 0, len(items)),
		UnreadCount:   len(items),
	}
	for _, n := range items {
		resp.Notifications = append(resp.Notifications, notification.ToResponse(n))
	}
	return resp, nil
}

func (s *service) GetUnreadCount(ctx context.Context, actor user.Principal) (int, error) {
	if !actor.IsAuthenticated() {
		return 0, user.ErrUnauthenticated
	}
	count, err := s.repo.GetUnreadCount(ctx, notification.ScopeFor(actor))
	if err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return count, nil
}

// MarkAsRead records that actor has seen the course. Repeating it is a no-op.
func (s *service) MarkAsRead(ctx context.Context, actor user.Principal, courseID string) error {
	if !actor.IsAuthenticated() {
		return user.ErrUnauthenticated
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.ErrCourseNotFound
		}
		return fmt.Errorf("failed to get course: %w", err)
	}
	if !actor.SeesAllCourses() {
		ok, err := s.courses.IsRecipient(ctx, courseID, actor.Email)
		if err != nil {
			return fmt.Errorf("failed to check course recipient: %w", err)
		}
		if !ok {
			return user.ErrAccessDenied
		}
	}

	if err := s.repo.MarkAsRead(ctx, courseID, actor.ID); err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}
