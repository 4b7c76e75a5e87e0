package dashboard

import (
	"context"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
)

type DashboardService interface {
	GetAdminDashboard(ctx context.Context, actor user.Principal) (*AdminDashboardResponse, error)
	GetManagerDashboard(ctx context.Context, actor user.Principal) (*ManagerDashboardResponse, error)
	GetEmployeeDashboard(ctx context.Context, actor user.Principal) (*EmployeeDashboardResponse, error)
}
