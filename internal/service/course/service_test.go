package course

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/course"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/notification"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/email"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/metrics"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/sse"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memCourseRepo struct {
	courses     []course.Course
	modules     map[string]*course.Module
	order       []string
	emails      map[string][]string
	employees   []course.Assignment
	failModules bool
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{modules: map[string]*course.Module{}, emails: map[string][]string{}}
}

func (r *memCourseRepo) Create(_ context.Context, c course.Course) (course.Course, error) {
	c.ID = "c" + string(rune('0'+len(r.courses)+1))
	r.courses = append(r.courses, c)
	return c, nil
}

func (r *memCourseRepo) CreateModules(_ context.Context, courseID string, modules []course.Module) ([]course.Module, error) {
	if r.failModules {
		return nil, errors.New("insert failed")
	}
	out := make([]course.Module, 0, len(modules))
	for i, m := range modules {
		m.ID = courseID + "-m" + string(rune('0'+i))
		m.CourseID = courseID
		m.Position = i
		stored := m
		r.modules[m.ID] = &stored
		r.order = append(r.order, m.ID)
		out = append(out, m)
	}
	return out, nil
}

func (r *memCourseRepo) AddEmployeeEmails(_ context.Context, courseID string, emails []string) ([]string, error) {
	added := []string{}
	for _, e := range emails {
		if !contains(r.emails[courseID], e) {
			r.emails[courseID] = append(r.emails[courseID], e)
			added = append(added, e)
		}
	}
	return added, nil
}

func (r *memCourseRepo) GetByID(_ context.Context, id string) (course.Course, error) {
	for _, c := range r.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return course.Course{}, pgx.ErrNoRows
}

func (r *memCourseRepo) List(context.Context) ([]course.Course, error) {
	return append([]course.Course(nil), r.courses...), nil
}

func (r *memCourseRepo) ListByRecipientEmail(_ context.Context, email string) ([]course.Course, error) {
	out := []course.Course{}
	for _, c := range r.courses {
		if contains(r.emails[c.ID], email) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCourseRepo) IsRecipient(_ context.Context, courseID, email string) (bool, error) {
	return contains(r.emails[courseID], email), nil
}

func (r *memCourseRepo) ListEmployeeEmails(_ context.Context, courseID string) ([]string, error) {
	out := append([]string{}, r.emails[courseID]...)
	sort.Strings(out)
	return out, nil
}

func (r *memCourseRepo) Delete(_ context.Context, id string) error {
	for i, c := range r.courses {
		if c.ID == id {
			r.courses = append(r.courses[:i], r.courses[i+1:]...)
			return nil
		}
	}
	return course.ErrCourseNotFound
}

func (r *memCourseRepo) ListModules(_ context.Context, courseID string) ([]course.Module, error) {
	out := []course.Module{}
	for _, id := range r.order {
		if m := r.modules[id]; m.CourseID == courseID {
			cp := *m
			cp.CompletedBy = append([]string(nil), m.CompletedBy...)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *memCourseRepo) ListModulesByCourseIDs(ctx context.Context, ids []string) (map[string][]course.Module, error) {
	out := map[string][]course.Module{}
	for _, id := range ids {
		out[id], _ = r.ListModules(ctx, id)
	}
	return out, nil
}

func (r *memCourseRepo) GetModule(_ context.Context, id string) (course.Module, error) {
	m, ok := r.modules[id]
	if !ok {
		return course.Module{}, course.ErrModuleNotFound
	}
	cp := *m
	cp.CompletedBy = append([]string(nil), m.CompletedBy...)
	return cp, nil
}

func (r *memCourseRepo) AddCompletion(_ context.Context, moduleID, userID string) error {
	m := r.modules[moduleID]
	if !m.IsCompletedBy(userID) {
		m.CompletedBy = append(m.CompletedBy, userID)
	}
	return nil
}

func (r *memCourseRepo) RemoveCompletion(_ context.Context, moduleID, userID string) error {
	m := r.modules[moduleID]
	if m.IsCompletedBy(userID) {
		m.ToggleCompletion(userID)
	}
	return nil
}

func (r *memCourseRepo) ListEmployeeAssignments(context.Context) ([]course.Assignment, error) {
	out := []course.Assignment{}
	for _, c := range r.courses {
		for _, e := range r.employees {
			if contains(r.emails[c.ID], e.Email) {
				a := e
				a.CourseID = c.ID
				out = append(out, a)
			}
		}
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) SendCourseAssigned(_ context.Context, to string, _ email.CourseAssignedData) error {
	m.sent = append(m.sent, to)
	return m.err
}

var (
	admin    = user.Principal{ID: "a1", Username: "root", Email: "root@example.com", Role: user.RoleAdmin}
	manager  = user.Principal{ID: "m1", Username: "mark", Email: "mark@example.com", Role: user.RoleManager}
	jane     = user.Principal{ID: "e1", Username: "jane", Email: "jane@example.com", Role: user.RoleEmployee}
	john     = user.Principal{ID: "e2", Username: "john", Email: "john@example.com", Role: user.RoleEmployee}
	stranger = user.Principal{ID: "e3", Username: "sam", Email: "sam@example.com", Role: user.RoleEmployee}
)

func newTestService(repo *memCourseRepo, mailer email.EmailService) *CourseServiceImpl {
	svc := NewCourseService(fakeTxManager{}, repo, mailer, nil, metrics.New()).(*CourseServiceImpl)
	svc.runAsync = func(f func()) { f() }
	return svc
}

func goCourse() course.CreateCourseRequest {
	return course.CreateCourseRequest{
		Title:       "Go",
		Description: "Learn Go",
		Modules: []course.ModuleInput{
			{Heading: "Intro", Description: "Basics"},
			{Heading: "Types", Description: "Structs"},
			{Heading: "Errors", Description: "Wrapping"},
			{Heading: "Concurrency", Description: "Channels"},
		},
		EmployeeEmails: []string{"Jane@Example.com", "john@example.com", "jane@example.com"},
	}
}

func TestCreateCourse_AssignsAndMails(t *testing.T) {
	repo := newMemCourseRepo()
	mailer := &recordingMailer{}
	svc := newTestService(repo, mailer)

	detail, err := svc.CreateCourse(context.Background(), admin, goCourse())

	require.NoError(t, err)
	assert.Equal(t, "root", detail.Course.CreatedByUsername)
	require.Len(t, detail.Modules, 4)
	assert.Equal(t, "Intro", detail.Modules[0].Heading)
	assert.Equal(t, []string{"jane@example.com", "john@example.com"}, detail.EmployeeEmails)
	assert.Equal(t, []string{"jane@example.com", "john@example.com"}, mailer.sent)
	assert.Zero(t, detail.Progress.Percentage)
}

func TestCreateCourse_PublishesLiveNotification(t *testing.T) {
	repo := newMemCourseRepo()
	svc := newTestService(repo, &recordingMailer{})
	svc.hub = sse.NewHub()
	events, cancel := svc.hub.Subscribe("jane@example.com")
	defer cancel()

	detail, err := svc.CreateCourse(context.Background(), admin, goCourse())
	require.NoError(t, err)

	require.Len(t, events, 1)
	ev := <-events
	assert.Equal(t, "course_assigned", ev.Name)
	resp, ok := ev.Data.(notification.NotificationResponse)
	require.True(t, ok)
	assert.Equal(t, detail.Course.ID, resp.CourseID)
	assert.Equal(t, "You have been assigned a new course: Go", resp.Message)
}

func TestCreateCourse_MailFailureDoesNotFail(t *testing.T) {
	repo := newMemCourseRepo()
	mailer := &recordingMailer{err: errors.New("relay down")}
	svc := newTestService(repo, mailer)

	_, err := svc.CreateCourse(context.Background(), admin, goCourse())

	require.NoError(t, err)
	assert.Len(t, mailer.sent, 2, "one attempt per recipient")
}

func TestCreateCourse_OnlyAdmin(t *testing.T) {
	for _, actor := range []user.Principal{manager, jane, {}} {
		repo := newMemCourseRepo()
		_, err := newTestService(repo, nil).CreateCourse(context.Background(), actor, goCourse())
		assert.ErrorIs(t, err, user.ErrAccessDenied)
		assert.Empty(t, repo.courses)
	}
}

func TestCreateCourse_ValidationAndFailure(t *testing.T) {
	repo := newMemCourseRepo()
	svc := newTestService(repo, nil)

	req := goCourse()
	req.Modules[1].Description = ""
	_, err := svc.CreateCourse(context.Background(), admin, req)
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Contains(t, verrs.ToMap(), "modules[1].description")

	repo.failModules = true
	mailer := &recordingMailer{}
	svc = newTestService(repo, mailer)
	_, err = svc.CreateCourse(context.Background(), admin, goCourse())
	assert.Error(t, err)
	assert.Empty(t, mailer.sent)
}

func TestVisibility(t *testing.T) {
	repo := newMemCourseRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()
	detail, err := svc.CreateCourse(ctx, admin, goCourse())
	require.NoError(t, err)
	id := detail.Course.ID

	for _, actor := range []user.Principal{admin, manager, jane} {
		list, err := svc.ListCourses(ctx, actor)
		require.NoError(t, err)
		assert.Len(t, list, 1, actor.Username)
		_, err = svc.GetCourseDetails(ctx, actor, id)
		assert.NoError(t, err, actor.Username)
	}

	list, err := svc.ListCourses(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = svc.GetCourseDetails(ctx, stranger, id)
	assert.ErrorIs(t, err, user.ErrAccessDenied)

	_, err = svc.GetCourseDetails(ctx, admin, "missing")
	assert.ErrorIs(t, err, course.ErrCourseNotFound)

	janeView, err := svc.GetCourseDetails(ctx, jane, id)
	require.NoError(t, err)
	assert.Empty(t, janeView.EmployeeEmails, "only admins and the creator see the list")
}

func TestToggleModuleCompletion(t *testing.T) {
	repo := newMemCourseRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()
	detail, err := svc.CreateCourse(ctx, admin, goCourse())
	require.NoError(t, err)
	first := detail.Modules[0].ID

	resp, err := svc.ToggleModuleCompletion(ctx, jane, first)
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	assert.Equal(t, 1, resp.Progress.CompletedCount)
	assert.Equal(t, 25.0, resp.Progress.Percentage)

	johnProgress, err := svc.GetProgress(ctx, john, detail.Course.ID)
	require.NoError(t, err)
	assert.Zero(t, johnProgress.Percentage, "toggle affects only the actor")

	resp, err = svc.ToggleModuleCompletion(ctx, jane, first)
	require.NoError(t, err)
	assert.False(t, resp.Completed)
	assert.Zero(t, resp.Progress.Percentage)

	_, err = svc.ToggleModuleCompletion(ctx, stranger, first)
	assert.ErrorIs(t, err, course.ErrNotCourseRecipient)

	_, err = svc.ToggleModuleCompletion(ctx, jane, "nope")
	assert.ErrorIs(t, err, course.ErrModuleNotFound)
}

func TestAddEmployeeEmails(t *testing.T) {
	repo := newMemCourseRepo()
	mailer := &recordingMailer{}
	svc := newTestService(repo, mailer)
	ctx := context.Background()
	detail, err := svc.CreateCourse(ctx, admin, goCourse())
	require.NoError(t, err)
	mailer.sent = nil

	resp, err := svc.AddEmployeeEmails(ctx, admin, detail.Course.ID, course.AddEmployeeEmailsRequest{
		Emails: []string{"JANE@example.com", "sam@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"sam@example.com"}, resp.Added)
	assert.Equal(t, []string{"sam@example.com"}, mailer.sent)

	_, err = svc.AddEmployeeEmails(ctx, manager, detail.Course.ID, course.AddEmployeeEmailsRequest{Emails: []string{"x@example.com"}})
	assert.ErrorIs(t, err, user.ErrAccessDenied)
}

func TestDeleteCourse(t *testing.T) {
	repo := newMemCourseRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()
	detail, err := svc.CreateCourse(ctx, admin, goCourse())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteCourse(ctx, manager, detail.Course.ID), user.ErrAccessDenied)
	require.NoError(t, svc.DeleteCourse(ctx, admin, detail.Course.ID))
	assert.ErrorIs(t, svc.DeleteCourse(ctx, admin, detail.Course.ID), course.ErrCourseNotFound)
}

func TestProgressReports(t *testing.T) {
	repo := newMemCourseRepo()
	repo.employees = []course.Assignment{
		{UserID: jane.ID, Username: jane.Username, Email: jane.Email},
		{UserID: john.ID, Username: john.Username, Email: john.Email},
	}
	svc := newTestService(repo, nil)
	ctx := context.Background()
	detail, err := svc.CreateCourse(ctx, admin, goCourse())
	require.NoError(t, err)
	for _, m := range detail.Modules {
		_, err := svc.ToggleModuleCompletion(ctx, jane, m.ID)
		require.NoError(t, err)
	}
	_, err = svc.ToggleModuleCompletion(ctx, john, detail.Modules[0].ID)
	require.NoError(t, err)

	mine, err := svc.MyProgress(ctx, jane)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, 100.0, mine[0].Progress.Percentage)

	tracking, err := svc.TrackProgress(ctx, manager)
	require.NoError(t, err)
	require.Len(t, tracking, 1)
	assert.Len(t, tracking[0].Employees, 2)

	summary, err := svc.ProgressSummary(ctx, admin)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, "jane", summary[0].Username)
	assert.Equal(t, 1, summary[0].Summary.Completed)
	assert.Equal(t, 1, summary[1].Summary.InProgress)

	_, err = svc.TrackProgress(ctx, jane)
	assert.ErrorIs(t, err, user.ErrAccessDenied)
}
