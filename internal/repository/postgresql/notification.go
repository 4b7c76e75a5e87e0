package postgresql

import (
	"context"
	"time"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/notification"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepositoryImpl{db: db}
}

// unreadCourses selects courses in scope without a read marker for $1.
// $2 is the recipient email, $3 widens the scope to every course.
const unreadCourses = `
	FROM courses c
	WHERE ($3 OR EXISTS (
			SELECT 1 FROM employee_emails e
			WHERE e.course_id = c.id AND e.email = LOWER($2)
		))
		AND NOT EXISTS (
			SELECT 1 FROM course_reads cr
			WHERE cr.course_id = c.id AND cr.user_id = $1
		)
`

// ListUnread implements notification.Repository.
func (r *notificationRepositoryImpl) ListUnread(ctx context.Context, scope notification.Scope) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT c.id, c.title, c.deadline, c.created_at
	`+unreadCourses+`
		ORDER BY c.created_at DESC, c.id DESC
	`, scope.UserID, scope.Email, scope.AllCourses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]notification.Notification, 0)
	for rows.Next() {
		var (
			courseID, title string
			deadline        *time.Time
			createdAt       time.Time
		)
		if err := rows.Scan(&courseID, &title, &deadline, &createdAt); err != nil {
			return nil, err
		}
		n := notification.CourseAssigned(courseID, title, deadline, createdAt)
		n.RecipientID = scope.UserID
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// GetUnreadCount implements notification.Repository.
func (r *notificationRepositoryImpl) GetUnreadCount(ctx context.Context, scope notification.Scope) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*)`+unreadCourses, scope.UserID, scope.Email, scope.AllCourses).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// MarkAsRead implements notification.Repository.
func (r *notificationRepositoryImpl) MarkAsRead(ctx context.Context, courseID, userID string) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `
		INSERT INTO course_reads (course_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (course_id, user_id) DO NOTHING
	`, courseID, userID)
	return err
}
