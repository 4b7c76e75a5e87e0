package feedback

import "time"

type Feedback struct {
	ID         string
	UserID     string
	Username   string
	CourseName string
	Feedback   string
	Rating     *int
	CreatedAt  time.Time
}

const (
	MinRating = 1
	MaxRating = 5
)
