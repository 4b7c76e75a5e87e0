package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/feedback"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
)

type FeedbackServiceImpl struct {
	feedback.FeedbackRepository
}

func NewFeedbackService(repo feedback.FeedbackRepository) feedback.FeedbackService {
	return &FeedbackServiceImpl{FeedbackRepository: repo}
}

func (s *FeedbackServiceImpl) Submit(ctx context.Context, actor user.Principal, req feedback.SubmitFeedbackRequest) (feedback.FeedbackResponse, error) {
	if err := user.Require(actor, user.ActionSubmitFeedback); err != nil {
		return feedback.FeedbackResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return feedback.FeedbackResponse{}, err
	}

	created, err := s.Create(ctx, feedback.Feedback{
		UserID:     actor.ID,
		CourseName: strings.TrimSpace(req.CourseName),
		Feedback:   req.Feedback,
		Rating:     req.Rating,
	})
	if err != nil {
		return feedback.FeedbackResponse{}, fmt.Errorf("failed to create feedback: %w", err)
	}
	created.Username = actor.Username
	return feedback.ToResponse(created), nil
}

// Report returns every feedback row along with per-course averages and the
// rating histogram.
func (s *FeedbackServiceImpl) Report(ctx context.Context, actor user.Principal) (feedback.ReportResponse, error) {
	if err := user.Require(actor, user.ActionViewFeedback); err != nil {
		return feedback.ReportResponse{}, err
	}

	rows, err := s.List(ctx)
	if err != nil {
		return feedback.ReportResponse{}, fmt.Errorf("failed to list feedback: %w", err)
	}

	resp := feedback.ReportResponse{
		Feedback: make([]feedback.FeedbackResponse, 0, len(rows)),
		Summary:  feedback.Aggregate(rows),
	}
	for _, f := range rows {
		resp.Feedback = append(resp.Feedback, feedback.ToResponse(f))
	}
	return resp, nil
}
