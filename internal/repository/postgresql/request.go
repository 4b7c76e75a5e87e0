package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/samriddhi-018/infosys-LGD/internal/domain/request"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
)

const requestSelect = `
	SELECT r.id, r.kind, r.title, r.description, r.status, r.submitted_by, u.username,
		r.handled_by, r.handled_at, r.created_at, r.updated_at
	FROM requests r
	JOIN users u ON u.id = r.submitted_by
`

type requestRepositoryImpl struct {
	db *database.DB
}

func NewRequestRepository(db *database.DB) request.RequestRepository {
	return &requestRepositoryImpl{db: db}
}

func scanRequest(row interface{ Scan(dest ...any) error }) (request.Request, error) {
	var r request.Request
	err := row.Scan(
		&r.ID,
		&r.Kind,
		&r.Title,
		&r.Description,
		&r.Status,
		&r.SubmittedBy,
		&r.SubmittedByUsername,
		&r.HandledBy,
		&r.HandledAt,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

// buildWhere turns a filter into a WHERE clause and its arguments.
func buildRequestWhere(filter request.RequestFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		conds = append(conds, fmt.Sprintf("r.kind = $%d", len(args)))
	}
	if filter.SubmittedBy != nil {
		args = append(args, *filter.SubmittedBy)
		conds = append(conds, fmt.Sprintf("r.submitted_by = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *requestRepositoryImpl) Create(ctx context.Context, req request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = newID()
	}

	err := q.QueryRow(ctx, `
		INSERT INTO requests (id, kind, title, description, status, submitted_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, req.ID, req.Kind, req.Title, req.Description, req.Status, req.SubmittedBy).Scan(&req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return request.Request{}, err
	}
	return req, nil
}

func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (request.Request, error) {
	q := GetQuerier(ctx, r.db)
	return scanRequest(q.QueryRow(ctx, requestSelect+` WHERE r.id = $1`, id))
}

// List returns matching requests, newest first.
func (r *requestRepositoryImpl) List(ctx context.Context, filter request.RequestFilter) ([]request.Request, error) {
	q := GetQuerier(ctx, r.db)

	where, args := buildRequestWhere(filter)
	rows, err := q.Query(ctx, requestSelect+where+` ORDER BY r.created_at DESC, r.id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]request.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *requestRepositoryImpl) UpdateStatusIfPending(ctx context.Context, req request.Request) (request.Request, error) {
	q := GetQuerier(ctx, r.db)

	var id string
	err := q.QueryRow(ctx, `
		UPDATE requests
		SET status = $1, handled_by = $2, handled_at = $3, updated_at = $3
		WHERE id = $4 AND status = 'pending'
		RETURNING id
	`, req.Status, req.HandledBy, req.HandledAt, req.ID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM requests WHERE id = $1)`, req.ID).Scan(&exists); err != nil {
			return request.Request{}, err
		}
		if !exists {
			return request.Request{}, request.ErrRequestNotFound
		}
		return request.Request{}, request.ErrRequestAlreadyProcessed
	}
	if err != nil {
		return request.Request{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *requestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return request.ErrRequestNotFound
	}
	return nil
}
