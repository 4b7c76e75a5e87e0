package notification

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	TypeCourseAssigned NotificationType = "course_assigned"
)

// Notification is an unread course as seen by one recipient. Read state is
// kept per (course, user).
type Notification struct {
	CourseID    string
	Type        NotificationType
	Title       string
	Message     string
	Deadline    *time.Time
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
	RecipientID string
}

// CourseAssigned builds the unread notification for a newly assigned course.
func CourseAssigned(courseID, title string, deadline *time.Time, createdAt time.Time) Notification {
	return Notification{
		CourseID:  courseID,
		Type:      TypeCourseAssigned,
		Title:     title,
		Message:   fmt.Sprintf("You have been assigned a new course: %s", title),
		Deadline:  deadline,
		CreatedAt: createdAt,
	}
}
