package postgresql

import (
	"context"
	"fmt"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/dashboard"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) CountUsers(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (r *dashboardRepositoryImpl) CountCourses(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return n, nil
}

// GetRequestCounts returns pending, approved, rejected for kind in single query
func (r *dashboardRepositoryImpl) GetRequestCounts(ctx context.Context, kind string) (*dashboard.RequestCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending')  AS pending,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected
		FROM requests
		WHERE kind = $1
	`

	var counts dashboard.RequestCounts
	if err := q.QueryRow(ctx, query, kind).Scan(&counts.Pending, &counts.Approved, &counts.Rejected); err != nil {
		return nil, fmt.Errorf("failed to get request counts: %w", err)
	}
	return &counts, nil
}
