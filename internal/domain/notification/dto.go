package notification

import "time"

type NotificationResponse struct {
	CourseID  string  `json:"course_id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Deadline  *string `json:"deadline,omitempty"`
	IsRead    bool    `json:"is_read"`
	CreatedAt string  `json:"created_at"`
}

func ToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		CourseID:  n.CourseID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.Deadline != nil {
		d := n.Deadline.Format("2006-01-02")
		resp.Deadline = &d
	}
	return resp
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}
