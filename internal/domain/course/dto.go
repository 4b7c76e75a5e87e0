package course

import (
	"fmt"
	"time"

	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
)

type ModuleInput struct {
	Heading     string `json:"heading"`
	Description string `json:"description"`
}

type CreateCourseRequest struct {
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Deadline       *string       `json:"deadline,omitempty"` // YYYY-MM-DD
	Modules        []ModuleInput `json:"modules"`
	EmployeeEmails []string      `json:"employee_emails"`
}

func (r *CreateCourseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 200 {
		errs.Add("title", "title must not exceed 200 characters")
	}
	if validator.IsEmpty(r.Description) {
		errs.Add("description", "description is required")
	}
	if r.Deadline != nil && *r.Deadline != "" {
		if _, ok := validator.IsValidDate(*r.Deadline); !ok {
			errs.Add("deadline", "deadline must be a date in YYYY-MM-DD format")
		}
	}

	// Headings and descriptions come in pairs.
	for i, m := range r.Modules {
		if validator.IsEmpty(m.Heading) {
			errs.Add(fmt.Sprintf("modules[%d].heading", i), "module heading is required")
		} else if len(m.Heading) > 200 {
			errs.Add(fmt.Sprintf("modules[%d].heading", i), "module heading must not exceed 200 characters")
		}
		if validator.IsEmpty(m.Description) {
			errs.Add(fmt.Sprintf("modules[%d].description", i), "module description is required")
		}
	}

	validateEmails(&errs, "employee_emails", r.EmployeeEmails)

	return errs.Err()
}

// DeadlineTime returns the parsed deadline, or nil when none was given.
func (r *CreateCourseRequest) DeadlineTime() *time.Time {
	if r.Deadline == nil || *r.Deadline == "" {
		return nil
	}
	t, ok := validator.IsValidDate(*r.Deadline)
	if !ok {
		return nil
	}
	return &t
}

type AddEmployeeEmailsRequest struct {
	Emails []string `json:"emails"`
}

func (r *AddEmployeeEmailsRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.Emails) == 0 {
		errs.Add("emails", "at least one email is required")
	}
	validateEmails(&errs, "emails", r.Emails)
	return errs.Err()
}

func validateEmails(errs *validator.ValidationErrors, field string, emails []string) {
	for i, e := range emails {
		if !validator.IsValidEmail(validator.NormalizeEmail(e)) {
			errs.Add(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("%q is not a valid email address", e))
		}
	}
}

// NormalizeEmails trims, lower-cases and de-duplicates emails keeping the
// first occurrence order.
func NormalizeEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		n := validator.NormalizeEmail(e)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

type CourseResponse struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	CreatedBy         string  `json:"created_by"`
	CreatedByUsername string  `json:"created_by_username,omitempty"`
	Deadline          *string `json:"deadline,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

func ToCourseResponse(c Course) CourseResponse {
	resp := CourseResponse{
		ID:                c.ID,
		Title:             c.Title,
		Description:       c.Description,
		CreatedBy:         c.CreatedBy,
		CreatedByUsername: c.CreatedByUsername,
		CreatedAt:         c.CreatedAt.Format(time.RFC3339),
	}
	if c.Deadline != nil {
		d := c.Deadline.Format("2006-01-02")
		resp.Deadline = &d
	}
	return resp
}

type ModuleResponse struct {
	ID            string `json:"id"`
	Position      int    `json:"position"`
	Heading       string `json:"heading"`
	Description   string `json:"description"`
	CompletedByMe bool   `json:"completed_by_me"`
}

type CourseDetailResponse struct {
	Course         CourseResponse   `json:"course"`
	Modules        []ModuleResponse `json:"modules"`
	EmployeeEmails []string         `json:"employee_emails,omitempty"`
	Progress       Progress         `json:"progress"`
}

type AddEmployeeEmailsResponse struct {
	Added []string `json:"added"`
}

type ToggleCompletionResponse struct {
	ModuleID  string   `json:"module_id"`
	CourseID  string   `json:"course_id"`
	Completed bool     `json:"completed"`
	Progress  Progress `json:"progress"`
}

type CourseProgressResponse struct {
	CourseID string   `json:"course_id"`
	Title    string   `json:"title"`
	Progress Progress `json:"progress"`
}

type EmployeeProgress struct {
	UserID   string   `json:"user_id"`
	Username string   `json:"username"`
	Progress Progress `json:"progress"`
}

type CourseTrackingResponse struct {
	CourseID  string             `json:"course_id"`
	Title     string             `json:"title"`
	Employees []EmployeeProgress `json:"employees"`
}

type UserProgressSummaryResponse struct {
	UserID   string          `json:"user_id"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Summary  ProgressSummary `json:"summary"`
}
