package feedback

import (
	"time"

	"github.com/samriddhi-018/infosys-LGD/internal/pkg/validator"
)

type SubmitFeedbackRequest struct {
	CourseName string `json:"course_name"`
	Feedback   string `json:"feedback"`
	Rating     *int   `json:"rating,omitempty"`
}

func (r *SubmitFeedbackRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CourseName) {
		errs.Add("course_name", "course_name is required")
	} else if len(r.CourseName) > 255 {
		errs.Add("course_name", "course_name must not exceed 255 characters")
	}
	if validator.IsEmpty(r.Feedback) {
		errs.Add("feedback", "feedback is required")
	}
	if r.Rating != nil && (*r.Rating < MinRating || *r.Rating > MaxRating) {
		errs.Add("rating", "rating must be between 1 and 5")
	}

	return errs.Err()
}

type FeedbackResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Username   string `json:"username,omitempty"`
	CourseName string `json:"course_name"`
	Feedback   string `json:"feedback"`
	Rating     *int   `json:"rating"`
	CreatedAt  string `json:"created_at"`
}

func ToResponse(f Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:         f.ID,
		UserID:     f.UserID,
		Username:   f.Username,
		CourseName: f.CourseName,
		Feedback:   f.Feedback,
		Rating:     f.Rating,
		CreatedAt:  f.CreatedAt.Format(time.RFC3339),
	}
}

type ReportResponse struct {
	Feedback []FeedbackResponse `json:"feedback"`
	Summary  Summary            `json:"summary"`
}
