package course

import (
	"context"
)

type CourseRepository interface {
	Create(ctx context.Context, c Course) (Course, error)
	CreateModules(ctx context.Context, courseID string, modules []Module) ([]Module, error)
	// AddEmployeeEmails stores normalized emails, skipping ones already
	// assigned, and returns those actually inserted.
	AddEmployeeEmails(ctx context.Context, courseID string, emails []string) ([]string, error)
	GetByID(ctx context.Context, id string) (Course, error)
	List(ctx context.Context) ([]Course, error)
	ListByRecipientEmail(ctx context.Context, email string) ([]Course, error)
	IsRecipient(ctx context.Context, courseID, email string) (bool, error)
	ListEmployeeEmails(ctx context.Context, courseID string) ([]string, error)
	Delete(ctx context.Context, id string) error

	// ListModules returns modules ordered by position with completion sets loaded.
	ListModules(ctx context.Context, courseID string) ([]Module, error)
	ListModulesByCourseIDs(ctx context.Context, courseIDs []string) (map[string][]Module, error)
	GetModule(ctx context.Context, id string) (Module, error)
	AddCompletion(ctx context.Context, moduleID, userID string) error
	RemoveCompletion(ctx context.Context, moduleID, userID string) error

	// ListEmployeeAssignments joins assignment emails to registered employees.
	ListEmployeeAssignments(ctx context.Context) ([]Assignment, error)
}
