package http

import (
	"log/slog"
	"net/http"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/request"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/middleware"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/response"
)

type RequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Handle(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	requestService request.RequestService
}

func NewRequestHandler(requestService request.RequestService) RequestHandler {
	return &requestHandlerImpl{requestService: requestService}
}

// Submit handles POST /requests
func (h *requestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.requestService.Submit(r.Context(), middleware.PrincipalFromContext(r.Context()), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Request submitted successfully", result)
}

// List handles GET /requests
func (h *requestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.requestService.List(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ListMine handles GET /requests/my
func (h *requestHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.requestService.ListMine(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Handle handles POST /requests/{id}/handle
func (h *requestHandlerImpl) Handle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", request.ErrRequestNotFound)
	if !ok {
		return
	}
	var req request.HandleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actor := middleware.PrincipalFromContext(r.Context())
	result, err := h.requestService.Handle(r.Context(), actor, id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Changed {
		slog.Info("Request handled", "request_id", id, "status", result.Request.Status, "by", actor.Username)
	}
	response.SuccessWithMessage(w, result.Message, result)
}

// Delete handles DELETE /requests/{id}
func (h *requestHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", request.ErrRequestNotFound)
	if !ok {
		return
	}
	if err := h.requestService.Delete(r.Context(), middleware.PrincipalFromContext(r.Context()), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Request deleted successfully", nil)
}
