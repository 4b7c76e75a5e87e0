package request

import (
	"time"

	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
)

type SubmitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 200 {
		errs.Add("title", "title must not exceed 200 characters")
	}
	if validator.IsEmpty(r.Description) {
		errs.Add("description", "description is required")
	}

	return errs.Err()
}

// HandleRequest carries the admin decision. Unknown actions are accepted and
// ignored.
type HandleRequest struct {
	Action string `json:"action"`
}

type RequestResponse struct {
	ID                  string  `json:"id"`
	Kind                string  `json:"kind"`
	Title               string  `json:"title"`
	Description         string  `json:"description"`
	Status              string  `json:"status"`
	SubmittedBy         string  `json:"submitted_by"`
	SubmittedByUsername string  `json:"submitted_by_username,omitempty"`
	HandledBy           *string `json:"handled_by,omitempty"`
	HandledAt           *string `json:"handled_at,omitempty"`
	CreatedAt           string  `json:"created_at"`
}

func ToResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:                  r.ID,
		Kind:                string(r.Kind),
		Title:               r.Title,
		Description:         r.Description,
		Status:              string(r.Status),
		SubmittedBy:         r.SubmittedBy,
		SubmittedByUsername: r.SubmittedByUsername,
		HandledBy:           r.HandledBy,
		CreatedAt:           r.CreatedAt.Format(time.RFC3339),
	}
	if r.HandledAt != nil {
		h := r.HandledAt.Format(time.RFC3339)
		resp.HandledAt = &h
	}
	return resp
}

// HandleResult reports the outcome of a handle call. Changed is false and
// Message empty when the action was ignored.
type HandleResult struct {
	Changed bool            `json:"changed"`
	Message string          `json:"message,omitempty"`
	Request RequestResponse `json:"request"`
}

// RequestList groups requests by kind for admin views.
type RequestList struct {
	EmployeeRequests []RequestResponse `json:"employee_requests"`
	ManagerRequests  []RequestResponse `json:"manager_requests"`
}
