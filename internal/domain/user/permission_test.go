package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func principal(role Role) Principal {
	return Principal{ID: "0199a1b2-0000-7000-8000-000000000001", Username: "someone", Role: role}
}

func TestAuthorize_RoleTable(t *testing.T) {
	cases := []struct {
		action  Action
		allowed []Role
	}{
		{ActionCreateCourse, []Role{RoleAdmin}},
		{ActionDeleteCourse, []Role{RoleAdmin}},
		{ActionGenerateCredentials, []Role{RoleAdmin}},
		{ActionHandleRequest, []Role{RoleAdmin}},
		{ActionDeleteRequest, []Role{RoleAdmin}},
		{ActionViewAdminDashboard, []Role{RoleAdmin}},
		{ActionSubmitManagerRequest, []Role{RoleManager}},
		{ActionViewManagerDashboard, []Role{RoleManager}},
		{ActionSubmitEmployeeRequest, []Role{RoleEmployee}},
		{ActionSubmitFeedback, []Role{RoleEmployee}},
		{ActionViewEmployeeDashboard, []Role{RoleEmployee}},
		{ActionTrackProgress, []Role{RoleAdmin, RoleManager}},
		{ActionViewFeedback, []Role{RoleAdmin, RoleManager}},
		{ActionViewAllRequests, []Role{RoleAdmin, RoleManager}},
	}

	for _, c := range cases {
		t.Run(string(c.action), func(t *testing.T) {
			for _, role := range Roles {
				want := false
				for _, r := range c.allowed {
					if r == role {
						want = true
					}
				}
				assert.Equal(t, want, Authorize(principal(role), c.action), "role %s", role)
			}
		})
	}
}

func TestAuthorize_NonAdminDeniedAdminActions(t *testing.T) {
	adminOnly := []Action{ActionCreateCourse, ActionDeleteCourse, ActionHandleRequest, ActionGenerateCredentials}
	for _, role := range []Role{RoleManager, RoleEmployee} {
		for _, action := range adminOnly {
			assert.False(t, Authorize(principal(role), action), "%s must not %s", role, action)
			assert.ErrorIs(t, Require(principal(role), action), ErrAccessDenied)
		}
	}
}

func TestAuthorize_UnauthenticatedDeniedEverything(t *testing.T) {
	anonymous := []Principal{
		{},
		{Role: RoleAdmin},
		{ID: "0199a1b2-0000-7000-8000-000000000001", Role: "owner"},
	}
	for _, p := range anonymous {
		for _, actions := range RoleActions {
			for _, action := range actions {
				assert.False(t, Authorize(p, action))
			}
		}
	}
}

func TestAuthorize_UnknownAction(t *testing.T) {
	assert.False(t, Authorize(principal(RoleAdmin), Action("drop_database")))
}

func TestSubmitRequestAction(t *testing.T) {
	assert.Equal(t, ActionSubmitManagerRequest, SubmitRequestAction(principal(RoleManager)))
	assert.Equal(t, ActionSubmitEmployeeRequest, SubmitRequestAction(principal(RoleEmployee)))
	assert.False(t, Authorize(principal(RoleAdmin), SubmitRequestAction(principal(RoleAdmin))))
}

func TestPrincipal_SeesAllCourses(t *testing.T) {
	assert.True(t, principal(RoleAdmin).SeesAllCourses())
	assert.True(t, principal(RoleManager).SeesAllCourses())
	assert.False(t, principal(RoleEmployee).SeesAllCourses())
	assert.False(t, Principal{Role: RoleAdmin}.SeesAllCourses())
}
