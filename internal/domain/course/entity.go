package course

import "time"

type Course struct {
	ID                string
	Title             string
	Description       string
	CreatedBy         string
	CreatedByUsername string
	Deadline          *time.Time
	CreatedAt         time.Time
}

type Module struct {
	ID          string
	CourseID    string
	Position    int
	Heading     string
	Description string

	// CompletedBy holds the ids of users who completed this module.
	CompletedBy []string
}

// IsCompletedBy reports whether userID is in the completion set.
func (m Module) IsCompletedBy(userID string) bool {
	for _, id := range m.CompletedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// ToggleCompletion flips membership of userID in the completion set and
// returns the new state. Applying it twice restores the original set.
func (m *Module) ToggleCompletion(userID string) bool {
	for i, id := range m.CompletedBy {
		if id == userID {
			m.CompletedBy = append(m.CompletedBy[:i:i], m.CompletedBy[i+1:]...)
			return false
		}
	}
	m.CompletedBy = append(m.CompletedBy, userID)
	return true
}

// Assignment links a course to a registered user through an employee email.
type Assignment struct {
	CourseID string
	UserID   string
	Username string
	Email    string
}
