package http

import (
	"net/http"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/dashboard"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/middleware"
	"github.com/samriddhi-018/infosys-LGD/internal/handler/http/response"
)

type DashboardHandler interface {
	// Admin returns user, course and pending request totals
	Admin(w http.ResponseWriter, r *http.Request)
	// Manager returns course and manager request totals
	Manager(w http.ResponseWriter, r *http.Request)
	// Employee returns the caller's course buckets and unread count
	Employee(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// Admin handles GET /dashboard/admin
func (h *dashboardHandlerImpl) Admin(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetAdminDashboard(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Manager handles GET /dashboard/manager
func (h *dashboardHandlerImpl) Manager(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetManagerDashboard(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

// Employee handles GET /dashboard/employee
func (h *dashboardHandlerImpl) Employee(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetEmployeeDashboard(r.Context(), middleware.PrincipalFromContext(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
