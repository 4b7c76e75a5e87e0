package dashboard

import (
	"context"
	"fmt"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/course"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/dashboard"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/notification"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/request"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

// CourseReader loads the courses assigned to an employee and their modules.
type CourseReader interface {
	ListByRecipientEmail(ctx context.Context, email string) ([]course.Course, error)
	ListModulesByCourseIDs(ctx context.Context, courseIDs []string) (map[string][]course.Module, error)
}

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	courses       CourseReader
	notifications notification.Repository
}

func NewDashboardService(repo dashboard.DashboardRepository, courses CourseReader, notifications notification.Repository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		courses:             courses,
		notifications:       notifications,
	}
}

// GetAdminDashboard loads user, course and request totals in parallel
func (s *DashboardServiceImpl) GetAdminDashboard(ctx context.Context, actor user.Principal) (*dashboard.AdminDashboardResponse, error) {
	if err := user.Require(actor, user.ActionViewAdminDashboard); err != nil {
		return nil, err
	}

	var resp dashboard.AdminDashboardResponse
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountUsers(gCtx)
		resp.TotalUsers = n
		return err
	})
	g.Go(func() error {
		n, err := s.CountCourses(gCtx)
		resp.TotalCourses = n
		return err
	})
	g.Go(func() error {
		counts, err := s.GetRequestCounts(gCtx, string(request.KindManager))
		if err != nil {
			return err
		}
		resp.PendingRequests = counts.Pending
		return nil
	})
	g.Go(func() error {
		counts, err := s.GetRequestCounts(gCtx, string(request.KindEmployee))
		if err != nil {
			return err
		}
		resp.PendingEmployeeRequests = counts.Pending
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load admin dashboard: %w", err)
	}
	return &resp, nil
}

// GetManagerDashboard counts courses and manager requests across all managers
func (s *DashboardServiceImpl) GetManagerDashboard(ctx context.Context, actor user.Principal) (*dashboard.ManagerDashboardResponse, error) {
	if err := user.Require(actor, user.ActionViewManagerDashboard); err != nil {
		return nil, err
	}

	var resp dashboard.ManagerDashboardResponse
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountCourses(gCtx)
		resp.TotalCourses = n
		return err
	})
	g.Go(func() error {
		counts, err := s.GetRequestCounts(gCtx, string(request.KindManager))
		if err != nil {
			return err
		}
		resp.ApprovedRequests = counts.Approved
		resp.PendingRequests = counts.Pending
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load manager dashboard: %w", err)
	}
	return &resp, nil
}

// GetEmployeeDashboard buckets the actor's assigned courses by progress
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context, actor user.Principal) (*dashboard.EmployeeDashboardResponse, error) {
	if err := user.Require(actor, user.ActionViewEmployeeDashboard); err != nil {
		return nil, err
	}

	var (
		resp     dashboard.EmployeeDashboardResponse
		progress []course.Progress
	)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		courses, err := s.courses.ListByRecipientEmail(gCtx, actor.Email)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(courses))
		for _, c := range courses {
			ids = append(ids, c.ID)
		}
		modules, err := s.courses.ListModulesByCourseIDs(gCtx, ids)
		if err != nil {
			return err
		}
		for _, id := range ids {
			progress = append(progress, course.ComputeProgress(actor.ID, modules[id]))
		}
		return nil
	})
	g.Go(func() error {
		n, err := s.notifications.GetUnreadCount(gCtx, notification.ScopeFor(actor))
		resp.UnreadNotifications = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load employee dashboard: %w", err)
	}

	summary := course.Summarize(progress)
	resp.CoursesAssigned = len(progress)
	resp.CoursesCompleted = summary.Completed
	resp.CoursesInProgress = summary.InProgress
	resp.CoursesToStart = summary.NotStarted
	return &resp, nil
}
