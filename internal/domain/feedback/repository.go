package feedback

import "context"

type FeedbackRepository interface {
	Create(ctx context.Context, f Feedback) (Feedback, error)
	// List returns every feedback row, newest first.
	List(ctx context.Context) ([]Feedback, error)
}
