package request

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/request"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/user"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/metrics"
)

type RequestServiceImpl struct {
	request.RequestRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewRequestService(requestRepository request.RequestRepository, m *metrics.Metrics) request.RequestService {
	return &RequestServiceImpl{
		RequestRepository: requestRepository,
		metrics:           m,
		now:               time.Now,
	}
}

func toResponses(requests []request.Request) []request.RequestResponse {
	out := make([]request.RequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, request.ToResponse(r))
	}
	return out
}

// kindFor maps the submitter's role onto a request kind. Admins do not
// submit requests.
func kindFor(actor user.Principal) (request.Kind, error) {
	if err := user.Require(actor, user.SubmitRequestAction(actor)); err != nil {
		return "", err
	}
	if actor.Role == user.RoleManager {
		return request.KindManager, nil
	}
	return request.KindEmployee, nil
}

// Submit implements request.RequestService.
func (s *RequestServiceImpl) Submit(ctx context.Context, actor user.Principal, req request.SubmitRequest) (request.RequestResponse, error) {
	kind, err := kindFor(actor)
	if err != nil {
		return request.RequestResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return request.RequestResponse{}, err
	}

	created, err := s.Create(ctx, request.Request{
		Kind:        kind,
		Title:       req.Title,
		Description: req.Description,
		Status:      request.StatusPending,
		SubmittedBy: actor.ID,
	})
	if err != nil {
		return request.RequestResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	created.SubmittedByUsername = actor.Username
	return request.ToResponse(created), nil
}

// Handle approves or rejects a pending request. Any other action leaves the
// request untouched and reports Changed=false.
func (s *RequestServiceImpl) Handle(ctx context.Context, actor user.Principal, id string, req request.HandleRequest) (request.HandleResult, error) {
	if err := user.Require(actor, user.ActionHandleRequest); err != nil {
		return request.HandleResult{}, err
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return request.HandleResult{}, request.ErrRequestNotFound
		}
		return request.HandleResult{}, fmt.Errorf("failed to get request: %w", err)
	}

	target, ok := request.ParseAction(req.Action)
	if !ok {
		return request.HandleResult{Changed: false, Request: request.ToResponse(current)}, nil
	}
	if !current.Transition(target, actor.ID, s.now()) {
		return request.HandleResult{}, request.ErrRequestAlreadyProcessed
	}

	updated, err := s.UpdateStatusIfPending(ctx, current)
	if err != nil {
		if errors.Is(err, request.ErrRequestAlreadyProcessed) || errors.Is(err, request.ErrRequestNotFound) {
			return request.HandleResult{}, err
		}
		return request.HandleResult{}, fmt.Errorf("failed to update request: %w", err)
	}
	s.metrics.RequestHandled(string(updated.Kind), string(updated.Status))

	return request.HandleResult{
		Changed: true,
		Message: fmt.Sprintf("Request has been %s.", updated.Status),
		Request: request.ToResponse(updated),
	}, nil
}

// Delete implements request.RequestService. Status is not checked.
func (s *RequestServiceImpl) Delete(ctx context.Context, actor user.Principal, id string) error {
	if err := user.Require(actor, user.ActionDeleteRequest); err != nil {
		return err
	}
	if err := s.RequestRepository.Delete(ctx, id); err != nil {
		if errors.Is(err, request.ErrRequestNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete request: %w", err)
	}
	return nil
}

// List returns every request to admins and a manager's own requests to
// managers.
func (s *RequestServiceImpl) List(ctx context.Context, actor user.Principal) (request.RequestList, error) {
	if err := user.Require(actor, user.ActionViewAllRequests); err != nil {
		return request.RequestList{}, err
	}

	result := request.RequestList{
		EmployeeRequests: []request.RequestResponse{},
		ManagerRequests:  []request.RequestResponse{},
	}

	managerKind := request.KindManager
	if actor.IsManager() {
		own, err := s.RequestRepository.List(ctx, request.RequestFilter{Kind: &managerKind, SubmittedBy: &actor.ID})
		if err != nil {
			return request.RequestList{}, fmt.Errorf("failed to list requests: %w", err)
		}
		result.ManagerRequests = toResponses(own)
		return result, nil
	}

	employeeKind := request.KindEmployee
	employees, err := s.RequestRepository.List(ctx, request.RequestFilter{Kind: &employeeKind})
	if err != nil {
		return request.RequestList{}, fmt.Errorf("failed to list requests: %w", err)
	}
	managers, err := s.RequestRepository.List(ctx, request.RequestFilter{Kind: &managerKind})
	if err != nil {
		return request.RequestList{}, fmt.Errorf("failed to list requests: %w", err)
	}
	result.EmployeeRequests = toResponses(employees)
	result.ManagerRequests = toResponses(managers)
	return result, nil
}

// ListMine returns the requests the actor submitted.
func (s *RequestServiceImpl) ListMine(ctx context.Context, actor user.Principal) ([]request.RequestResponse, error) {
	kind, err := kindFor(actor)
	if err != nil {
		return nil, err
	}
	own, err := s.RequestRepository.List(ctx, request.RequestFilter{Kind: &kind, SubmittedBy: &actor.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return toResponses(own), nil
}
