package request

import "time"

type Kind string

const (
	KindEmployee Kind = "employee" // employee -> admin
	KindManager  Kind = "manager"  // manager -> admin
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseAction maps a handle action onto its target status. Anything other
// than "approved" or "rejected" is not an action.
func ParseAction(action string) (Status, bool) {
	switch Status(action) {
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	}
	return "", false
}

type Request struct {
	ID                  string
	Kind                Kind
	Title               string
	Description         string
	Status              Status
	SubmittedBy         string
	SubmittedByUsername string
	HandledBy           *string
	HandledAt           *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Transition moves a pending request to target. It reports false and leaves
// the request untouched when the request is already terminal.
func (r *Request) Transition(target Status, handledBy string, at time.Time) bool {
	if r.Status != StatusPending || !target.IsTerminal() {
		return false
	}
	r.Status = target
	r.HandledBy = &handledBy
	r.HandledAt = &at
	r.UpdatedAt = at
	return true
}
