package feedback

import (
	"context"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
)

type FeedbackService interface {
	Submit(ctx context.Context, actor user.Principal, req SubmitFeedbackRequest) (FeedbackResponse, error)
	Report(ctx context.Context, actor user.Principal) (ReportResponse, error)
}
