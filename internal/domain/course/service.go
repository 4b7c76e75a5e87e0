package course

import (
	"context"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
)

type CourseService interface {
	CreateCourse(ctx context.Context, actor user.Principal, req CreateCourseRequest) (CourseDetailResponse, error)
	ListCourses(ctx context.Context, actor user.Principal) ([]CourseResponse, error)
	GetCourseDetails(ctx context.Context, actor user.Principal, courseID string) (CourseDetailResponse, error)
	AddEmployeeEmails(ctx context.Context, actor user.Principal, courseID string, req AddEmployeeEmailsRequest) (AddEmployeeEmailsResponse, error)
	DeleteCourse(ctx context.Context, actor user.Principal, courseID string) error

	ToggleModuleCompletion(ctx context.Context, actor user.Principal, moduleID string) (ToggleCompletionResponse, error)
	GetProgress(ctx context.Context, actor user.Principal, courseID string) (Progress, error)
	MyProgress(ctx context.Context, actor user.Principal) ([]CourseProgressResponse, error)
	TrackProgress(ctx context.Context, actor user.Principal) ([]CourseTrackingResponse, error)
	ProgressSummary(ctx context.Context, actor user.Principal) ([]UserProgressSummaryResponse, error)
}
