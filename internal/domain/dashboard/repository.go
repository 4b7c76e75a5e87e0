package dashboard

import (
	"context"
)

// RequestCounts holds request totals per status for one request kind
type RequestCounts struct {
	Pending  int64
	Approved int64
	Rejected int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountCourses(ctx context.Context) (int64, error)
	// GetRequestCounts returns status totals for kind in a single query
	GetRequestCounts(ctx context.Context, kind string) (*RequestCounts, error)
}
