package http

import (
	"log/slog"
	"net/http"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/course"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/middleware"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/response"
)

type CourseHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	AddEmployeeEmails(w http.ResponseWriter, r *http.Request)
	GetProgress(w http.ResponseWriter, r *http.Request)

	ToggleModuleCompletion(w http.ResponseWriter, r *http.Request)

	MyProgress(w http.ResponseWriter, r *http.Request)
	TrackProgress(w http.ResponseWriter, r *http.Request)
	ProgressSummary(w http.ResponseWriter, r *http.Request)
}

type courseHandlerImpl struct {
	courseService course.CourseService
}

func NewCourseHandler(courseService course.CourseService) CourseHandler {
	return &courseHandlerImpl{courseService: courseService}
}

// Create handles POST /courses
func (h *courseHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req course.CreateCourseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	actor := middleware.PrincipalFromContext(r.Context())
	result, err := h.courseService.CreateCourse(r.Context(), actor, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Course created", "course_id", result.Course.ID, "by", actor.Username)
	response.Created(w, "Course created successfully", result)
}

// List handles GET /courses
func (h *courseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.courseService.ListCourses(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// GetByID handles GET /courses/{id}
func (h *courseHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", course.ErrCourseNotFound)
	if !ok {
		return
	}
	result, err := h.courseService.GetCourseDetails(r.Context(), middleware.PrincipalFromContext(r.Context()), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Delete handles DELETE /courses/{id}
func (h *courseHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", course.ErrCourseNotFound)
	if !ok {
		return
	}
	actor := middleware.PrincipalFromContext(r.Context())
	if err := h.courseService.DeleteCourse(r.Context(), actor, id); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Course deleted", "course_id", id, "by", actor.Username)
	response.SuccessWithMessage(w, "Course deleted successfully", nil)
}

// AddEmployeeEmails handles POST /courses/{id}/emails
func (h *courseHandlerImpl) AddEmployeeEmails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", course.ErrCourseNotFound)
	if !ok {
		return
	}
	var req course.AddEmployeeEmailsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.courseService.AddEmployeeEmails(r.Context(), middleware.PrincipalFromContext(r.Context()), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee emails added successfully", result)
}

// GetProgress handles GET /courses/{id}/progress
func (h *courseHandlerImpl) GetProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", course.ErrCourseNotFound)
	if !ok {
		return
	}
	result, err := h.courseService.GetProgress(r.Context(), middleware.PrincipalFromContext(r.Context()), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ToggleModuleCompletion handles POST /modules/{id}/completion
func (h *courseHandlerImpl) ToggleModuleCompletion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", course.ErrModuleNotFound)
	if !ok {
		return
	}
	result, err := h.courseService.ToggleModuleCompletion(r.Context(), middleware.PrincipalFromContext(r.Context()), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// MyProgress handles GET /progress/me
func (h *courseHandlerImpl) MyProgress(w http.ResponseWriter, r *http.Request) {
	result, err := h.courseService.MyProgress(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// TrackProgress handles GET /progress/tracking
func (h *courseHandlerImpl) TrackProgress(w http.ResponseWriter, r *http.Request) {
	result, err := h.courseService.TrackProgress(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// ProgressSummary handles GET /progress/summary
func (h *courseHandlerImpl) ProgressSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.courseService.ProgressSummary(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
