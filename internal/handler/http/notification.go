package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/course"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/notification"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/middleware"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/response"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/sse"
)

const streamKeepalive = 30 * time.Second

// NotificationHandler defines the notification handler interface
type NotificationHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAsRead(w http.ResponseWriter, r *http.Request)
	// Stream pushes course assignments to the caller as server-sent events
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notificationService notification.Service
	hub                 *sse.Hub
}

func NewNotificationHandler(notificationService notification.Service, hub *sse.Hub) NotificationHandler {
	return &notificationHandlerImpl{notificationService: notificationService, hub: hub}
}

// List handles GET /notifications
func (h *notificationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.notificationService.GetNotifications(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// UnreadCount handles GET /notifications/unread-count
func (h *notificationHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.GetUnreadCount(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, notification.UnreadCountResponse{UnreadCount: count})
}

// MarkAsRead handles POST /notifications/{course_id}/read
func (h *notificationHandlerImpl) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "course_id", course.ErrCourseNotFound)
	if !ok {
		return
	}
	if err := h.notificationService.MarkAsRead(r.Context(), middleware.PrincipalFromContext(r.Context()), courseID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Notification marked as read", nil)
}

// Stream handles GET /notifications/stream
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	actor := middleware.PrincipalFromContext(r.Context())
	if h.hub == nil {
		response.NotFound(w, "Live notifications are not enabled")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(actor.Email)
	defer cleanup()

	fmt.Fprint(w, "event: connected\ndata: {\"status\":\"connected\"}\n\n")
	flusher.Flush()

	keepalive := time.NewTicker(streamKeepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
