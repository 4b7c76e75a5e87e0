package course

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/course"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/notification"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/email"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/metrics"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/sse"
)

type CourseServiceImpl struct {
	txManager database.TxManager
	course.CourseRepository
	emailService email.EmailService
	hub          *sse.Hub
	metrics      *metrics.Metrics
	// runAsync starts assignment mail delivery after the response is built.
	runAsync func(func())
}

// NewCourseService builds the course service. hub may be nil when live
// notifications are not served.
func NewCourseService(txManager database.TxManager, courseRepository course.CourseRepository, emailService email.EmailService, hub *sse.Hub, m *metrics.Metrics) course.CourseService {
	return &CourseServiceImpl{
		txManager:        txManager,
		CourseRepository: courseRepository,
		emailService:     emailService,
		hub:              hub,
		metrics:          m,
		runAsync:         func(f func()) { go f() },
	}
}

func (s *CourseServiceImpl) getCourse(ctx context.Context, id string) (course.Course, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return course.Course{}, course.ErrCourseNotFound
		}
		return course.Course{}, fmt.Errorf("failed to get course: %w", err)
	}
	return c, nil
}

// canView reports whether actor may see the course: admins and managers see
// every course, everyone else needs their email on the assignment list.
func (s *CourseServiceImpl) canView(ctx context.Context, actor user.Principal, courseID string) (bool, error) {
	if !actor.IsAuthenticated() {
		return false, nil
	}
	if actor.SeesAllCourses() {
		return true, nil
	}
	ok, err := s.IsRecipient(ctx, courseID, actor.Email)
	if err != nil {
		return false, fmt.Errorf("failed to check course recipient: %w", err)
	}
	return ok, nil
}

func (s *CourseServiceImpl) visibleCourses(ctx context.Context, actor user.Principal) ([]course.Course, error) {
	if !actor.IsAuthenticated() {
		return nil, user.ErrUnauthenticated
	}
	var (
		courses []course.Course
		err     error
	)
	if actor.SeesAllCourses() {
		courses, err = s.List(ctx)
	} else {
		courses, err = s.ListByRecipientEmail(ctx, actor.Email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func toModuleResponses(modules []course.Module, userID string) []course.ModuleResponse {
	out := make([]course.ModuleResponse, 0, len(modules))
	for _, m := range modules {
		out = append(out, course.ModuleResponse{
			ID:            m.ID,
			Position:      m.Position,
			Heading:       m.Heading,
			Description:   m.Description,
			CompletedByMe: m.IsCompletedBy(userID),
		})
	}
	return out
}

// notifyAssigned pushes a live notification to connected recipients and
// mails every recipient once. Failures are logged only.
func (s *CourseServiceImpl) notifyAssigned(ctx context.Context, c course.Course, recipients []string) {
	if len(recipients) == 0 {
		return
	}
	s.hub.PublishToMany(recipients, sse.Event{
		Name: string(notification.TypeCourseAssigned),
		Data: notification.ToResponse(notification.CourseAssigned(c.ID, c.Title, c.Deadline, c.CreatedAt)),
	})

	if s.emailService == nil {
		return
	}
	data := email.CourseAssignedData{Title: c.Title, Description: c.Description}
	if c.Deadline != nil {
		data.Deadline = c.Deadline.Format("2006-01-02")
	}
	ctx = context.WithoutCancel(ctx)

	s.runAsync(func() {
		for _, to := range recipients {
			err := s.emailService.SendCourseAssigned(ctx, to, data)
			s.metrics.EmailSent(err)
			if err != nil {
				slog.Warn("course assignment email not delivered", "course_id", c.ID, "to", to, "error", err)
			}
		}
	})
}

// CreateCourse stores the course, its modules and its assignments in one
// transaction, then mails the assigned employees.
func (s *CourseServiceImpl) CreateCourse(ctx context.Context, actor user.Principal, req course.CreateCourseRequest) (course.CourseDetailResponse, error) {
	if err := user.Require(actor, user.ActionCreateCourse); err != nil {
		return course.CourseDetailResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return course.CourseDetailResponse{}, err
	}

	emails := course.NormalizeEmails(req.EmployeeEmails)
	inputs := make([]course.Module, 0, len(req.Modules))
	for _, m := range req.Modules {
		inputs = append(inputs, course.Module{Heading: m.Heading, Description: m.Description})
	}

	var (
		created course.Course
		modules []course.Module
		added   []string
	)
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.Create(txCtx, course.Course{
			Title:       req.Title,
			Description: req.Description,
			CreatedBy:   actor.ID,
			Deadline:    req.DeadlineTime(),
		})
		if err != nil {
			return fmt.Errorf("failed to create course: %w", err)
		}
		modules, err = s.CreateModules(txCtx, created.ID, inputs)
		if err != nil {
			return fmt.Errorf("failed to create modules: %w", err)
		}
		added, err = s.CourseRepository.AddEmployeeEmails(txCtx, created.ID, emails)
		if err != nil {
			return fmt.Errorf("failed to assign course: %w", err)
		}
		return nil
	})
	if err != nil {
		return course.CourseDetailResponse{}, err
	}
	created.CreatedByUsername = actor.Username

	s.metrics.CourseCreated()
	s.notifyAssigned(ctx, created, added)

	return course.CourseDetailResponse{
		Course:         course.ToCourseResponse(created),
		Modules:        toModuleResponses(modules, actor.ID),
		EmployeeEmails: emails,
		Progress:       course.ComputeProgress(actor.ID, modules),
	}, nil
}

func (s *CourseServiceImpl) ListCourses(ctx context.Context, actor user.Principal) ([]course.CourseResponse, error) {
	courses, err := s.visibleCourses(ctx, actor)
	if err != nil {
		return nil, err
	}
	out := make([]course.CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, course.ToCourseResponse(c))
	}
	return out, nil
}

func (s *CourseServiceImpl) GetCourseDetails(ctx context.Context, actor user.Principal, courseID string) (course.CourseDetailResponse, error) {
	c, err := s.getCourse(ctx, courseID)
	if err != nil {
		return course.CourseDetailResponse{}, err
	}
	ok, err := s.canView(ctx, actor, courseID)
	if err != nil {
		return course.CourseDetailResponse{}, err
	}
	if !ok {
		return course.CourseDetailResponse{}, user.ErrAccessDenied
	}

	modules, err := s.ListModules(ctx, courseID)
	if err != nil {
		return course.CourseDetailResponse{}, fmt.Errorf("failed to list modules: %w", err)
	}

	resp := course.CourseDetailResponse{
		Course:   course.ToCourseResponse(c),
		Modules:  toModuleResponses(modules, actor.ID),
		Progress: course.ComputeProgress(actor.ID, modules),
	}
	if actor.IsAdmin() || c.CreatedBy == actor.ID {
		resp.EmployeeEmails, err = s.ListEmployeeEmails(ctx, courseID)
		if err != nil {
			return course.CourseDetailResponse{}, fmt.Errorf("failed to list employee emails: %w", err)
		}
	}
	return resp, nil
}

// AddEmployeeEmails assigns more employees to a course. Already assigned
// addresses are skipped and only new ones are mailed.
func (s *CourseServiceImpl) AddEmployeeEmails(ctx context.Context, actor user.Principal, courseID string, req course.AddEmployeeEmailsRequest) (course.AddEmployeeEmailsResponse, error) {
	c, err := s.getCourse(ctx, courseID)
	if err != nil {
		return course.AddEmployeeEmailsResponse{}, err
	}
	if !actor.IsAdmin() && !(actor.IsAuthenticated() && c.CreatedBy == actor.ID) {
		return course.AddEmployeeEmailsResponse{}, user.ErrAccessDenied
	}
	if err := req.Validate(); err != nil {
		return course.AddEmployeeEmailsResponse{}, err
	}

	added, err := s.CourseRepository.AddEmployeeEmails(ctx, courseID, course.NormalizeEmails(req.Emails))
	if err != nil {
		return course.AddEmployeeEmailsResponse{}, fmt.Errorf("failed to add employee emails: %w", err)
	}
	s.notifyAssigned(ctx, c, added)

	return course.AddEmployeeEmailsResponse{Added: added}, nil
}

func (s *CourseServiceImpl) DeleteCourse(ctx context.Context, actor user.Principal, courseID string) error {
	if err := user.Require(actor, user.ActionDeleteCourse); err != nil {
		return err
	}
	if err := s.Delete(ctx, courseID); err != nil {
		if errors.Is(err, course.ErrCourseNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

// ToggleModuleCompletion flips the actor's completion of one module and
// returns the recomputed course progress.
func (s *CourseServiceImpl) ToggleModuleCompletion(ctx context.Context, actor user.Principal, moduleID string) (course.ToggleCompletionResponse, error) {
	if !actor.IsAuthenticated() {
		return course.ToggleCompletionResponse{}, user.ErrUnauthenticated
	}
	m, err := s.GetModule(ctx, moduleID)
	if err != nil {
		if errors.Is(err, course.ErrModuleNotFound) {
			return course.ToggleCompletionResponse{}, err
		}
		return course.ToggleCompletionResponse{}, fmt.Errorf("failed to get module: %w", err)
	}

	recipient, err := s.IsRecipient(ctx, m.CourseID, actor.Email)
	if err != nil {
		return course.ToggleCompletionResponse{}, fmt.Errorf("failed to check course recipient: %w", err)
	}
	if !recipient {
		return course.ToggleCompletionResponse{}, course.ErrNotCourseRecipient
	}

	completed := m.ToggleCompletion(actor.ID)
	if completed {
		err = s.AddCompletion(ctx, m.ID, actor.ID)
	} else {
		err = s.RemoveCompletion(ctx, m.ID, actor.ID)
	}
	if err != nil {
		return course.ToggleCompletionResponse{}, fmt.Errorf("failed to toggle completion: %w", err)
	}
	s.metrics.CompletionToggled(completed)

	modules, err := s.ListModules(ctx, m.CourseID)
	if err != nil {
		return course.ToggleCompletionResponse{}, fmt.Errorf("failed to list modules: %w", err)
	}

	return course.ToggleCompletionResponse{
		ModuleID:  m.ID,
		CourseID:  m.CourseID,
		Completed: completed,
		Progress:  course.ComputeProgress(actor.ID, modules),
	}, nil
}

func (s *CourseServiceImpl) GetProgress(ctx context.Context, actor user.Principal, courseID string) (course.Progress, error) {
	if _, err := s.getCourse(ctx, courseID); err != nil {
		return course.Progress{}, err
	}
	ok, err := s.canView(ctx, actor, courseID)
	if err != nil {
		return course.Progress{}, err
	}
	if !ok {
		return course.Progress{}, user.ErrAccessDenied
	}

	modules, err := s.ListModules(ctx, courseID)
	if err != nil {
		return course.Progress{}, fmt.Errorf("failed to list modules: %w", err)
	}
	return course.ComputeProgress(actor.ID, modules), nil
}

func (s *CourseServiceImpl) modulesFor(ctx context.Context, courseIDs []string) (map[string][]course.Module, error) {
	modules, err := s.ListModulesByCourseIDs(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	return modules, nil
}

// MyProgress lists the actor's visible courses with any progress made.
func (s *CourseServiceImpl) MyProgress(ctx context.Context, actor user.Principal) ([]course.CourseProgressResponse, error) {
	courses, err := s.visibleCourses(ctx, actor)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	modules, err := s.modulesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]course.CourseProgressResponse, 0)
	for _, c := range courses {
		p := course.ComputeProgress(actor.ID, modules[c.ID])
		if p.Percentage > 0 {
			out = append(out, course.CourseProgressResponse{CourseID: c.ID, Title: c.Title, Progress: p})
		}
	}
	return out, nil
}

// TrackProgress lists, per course, the assigned employees who have started it.
func (s *CourseServiceImpl) TrackProgress(ctx context.Context, actor user.Principal) ([]course.CourseTrackingResponse, error) {
	if err := user.Require(actor, user.ActionTrackProgress); err != nil {
		return nil, err
	}

	courses, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	assignments, err := s.ListEmployeeAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	modules, err := s.modulesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	byCourse := make(map[string][]course.Assignment)
	for _, a := range assignments {
		byCourse[a.CourseID] = append(byCourse[a.CourseID], a)
	}

	out := make([]course.CourseTrackingResponse, 0, len(courses))
	for _, c := range courses {
		tracking := course.CourseTrackingResponse{CourseID: c.ID, Title: c.Title, Employees: []course.EmployeeProgress{}}
		for _, a := range byCourse[c.ID] {
			p := course.ComputeProgress(a.UserID, modules[c.ID])
			if p.Percentage > 0 {
				tracking.Employees = append(tracking.Employees, course.EmployeeProgress{UserID: a.UserID, Username: a.Username, Progress: p})
			}
		}
		out = append(out, tracking)
	}
	return out, nil
}

// ProgressSummary buckets every employee's assigned courses into not
// started, in progress and completed.
func (s *CourseServiceImpl) ProgressSummary(ctx context.Context, actor user.Principal) ([]course.UserProgressSummaryResponse, error) {
	if err := user.Require(actor, user.ActionTrackProgress); err != nil {
		return nil, err
	}

	assignments, err := s.ListEmployeeAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, a := range assignments {
		if _, ok := seen[a.CourseID]; !ok {
			seen[a.CourseID] = struct{}{}
			ids = append(ids, a.CourseID)
		}
	}
	modules, err := s.modulesFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	type entry struct {
		resp     course.UserProgressSummaryResponse
		progress []course.Progress
	}
	byUser := make(map[string]*entry)
	for _, a := range assignments {
		e, ok := byUser[a.UserID]
		if !ok {
			e = &entry{resp: course.UserProgressSummaryResponse{UserID: a.UserID, Username: a.Username, Email: a.Email}}
			byUser[a.UserID] = e
		}
		e.progress = append(e.progress, course.ComputeProgress(a.UserID, modules[a.CourseID]))
	}

	out := make([]course.UserProgressSummaryResponse, 0, len(byUser))
	for _, e := range byUser {
		e.resp.Summary = course.Summarize(e.progress)
		out = append(out, e.resp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
