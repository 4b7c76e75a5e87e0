package postgresql

import (
	"context"

	"github.com/samriddhi-018/infosys-LGD/internal/domain/feedback"
	"github.com/samriddhi-018/infosys-LGD/internal/pkg/database"
)

type feedbackRepositoryImpl struct {
	db *database.DB
}

func NewFeedbackRepository(db *database.DB) feedback.FeedbackRepository {
	return &feedbackRepositoryImpl{db: db}
}

func (r *feedbackRepositoryImpl) Create(ctx context.Context, f feedback.Feedback) (feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	if f.ID == "" {
		f.ID = newID()
	}

	err := q.QueryRow(ctx, `
		INSERT INTO course_feedback (id, user_id, course_name, feedback, rating)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, f.ID, f.UserID, f.CourseName, f.Feedback, f.Rating).Scan(&f.CreatedAt)
	if err != nil {
		return feedback.Feedback{}, err
	}
	return f, nil
}

func (r *feedbackRepositoryImpl) List(ctx context.Context) ([]feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT f.id, f.user_id, u.username, f.course_name, f.feedback, f.rating, f.created_at
		FROM course_feedback f
		JOIN users u ON u.id = f.user_id
		ORDER BY f.created_at DESC, f.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]feedback.Feedback, 0)
	for rows.Next() {
		var f feedback.Feedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.Username, &f.CourseName, &f.Feedback, &f.Rating, &f.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}
