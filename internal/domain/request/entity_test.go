package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	s, ok := ParseAction("approved")
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, s)

	s, ok = ParseAction("rejected")
	assert.True(t, ok)
	assert.Equal(t, StatusRejected, s)

	for _, action := range []string{"", "pending", "APPROVED", "approve", "delete"} {
		_, ok := ParseAction(action)
		assert.False(t, ok, action)
	}
}

func TestTransition_OnlyFromPending(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	r := Request{ID: "r1", Status: StatusPending}
	assert.True(t, r.Transition(StatusApproved, "admin-1", now))
	assert.Equal(t, StatusApproved, r.Status)
	assert.Equal(t, "admin-1", *r.HandledBy)

	// Terminal: a later rejection does not change anything.
	assert.False(t, r.Transition(StatusRejected, "admin-2", now.Add(time.Hour)))
	assert.Equal(t, StatusApproved, r.Status)
	assert.Equal(t, "admin-1", *r.HandledBy)
	assert.Equal(t, now, *r.HandledAt)
}

func TestTransition_RejectsNonTerminalTarget(t *testing.T) {
	r := Request{Status: StatusPending}
	assert.False(t, r.Transition(StatusPending, "admin-1", time.Now()))
	assert.Equal(t, StatusPending, r.Status)
	assert.Nil(t, r.HandledBy)
}

func TestSubmitRequest_Validate(t *testing.T) {
	ok := SubmitRequest{Title: "Laptop", Description: "Need a new one"}
	assert.NoError(t, ok.Validate())

	bad := SubmitRequest{Title: " "}
	assert.Error(t, bad.Validate())
}
