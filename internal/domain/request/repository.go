package request

import (
	"context"
)

type RequestFilter struct {
	Kind        *Kind
	SubmittedBy *string
}

type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	List(ctx context.Context, filter RequestFilter) ([]Request, error)
	// UpdateStatusIfPending applies the transition only while the stored
	// status is still pending. It returns ErrRequestAlreadyProcessed otherwise.
	UpdateStatusIfPending(ctx context.Context, r Request) (Request, error)
	Delete(ctx context.Context, id string) error
}
