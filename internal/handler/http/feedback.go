package http

import (
	"net/http"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/feedback"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/middleware"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/response"
)

type FeedbackHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
}

type feedbackHandlerImpl struct {
	feedbackService feedback.FeedbackService
}

func NewFeedbackHandler(feedbackService feedback.FeedbackService) FeedbackHandler {
	return &feedbackHandlerImpl{feedbackService: feedbackService}
}

// Submit handles POST /feedback
func (h *feedbackHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req feedback.SubmitFeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.feedbackService.Submit(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Feedback submitted successfully", result)
}

// Report handles GET /feedback
func (h *feedbackHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	result, err := h.feedbackService.Report(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
