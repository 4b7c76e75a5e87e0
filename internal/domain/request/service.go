package request

import (
	"context"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
)

type RequestService interface {
	Submit(ctx context.Context, actor user.Principal, req SubmitRequest) (RequestResponse, error)
	Handle(ctx context.Context, actor user.Principal, id string, req HandleRequest) (HandleResult, error)
	Delete(ctx context.Context, actor user.Principal, id string) error
	List(ctx context.Context, actor user.Principal) (RequestList, error)
	ListMine(ctx context.Context, actor user.Principal) ([]RequestResponse, error)
}
