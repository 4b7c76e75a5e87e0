package user

type Action string

const (
	// Admin
	ActionCreateCourse        Action = "create_course"
	ActionDeleteCourse        Action = "delete_course"
	ActionGenerateCredentials Action = "generate_credentials"
	ActionHandleRequest       Action = "handle_request"
	ActionDeleteRequest       Action = "delete_request"
	ActionViewAdminDashboard  Action = "view_admin_dashboard"

	// Admin and manager
	ActionTrackProgress   Action = "track_progress"
	ActionViewFeedback    Action = "view_feedback"
	ActionViewAllRequests Action = "view_all_requests"

	// Manager
	ActionSubmitManagerRequest Action = "submit_manager_request"
	ActionViewManagerDashboard Action = "view_manager_dashboard"

	// Employee
	ActionSubmitEmployeeRequest Action = "submit_employee_request"
	ActionSubmitFeedback        Action = "submit_feedback"
	ActionViewEmployeeDashboard Action = "view_employee_dashboard"
)

// RoleActions maps roles to the actions they may perform
var RoleActions = map[Role][]Action{
	RoleAdmin: {
		ActionCreateCourse,
		ActionDeleteCourse,
		ActionGenerateCredentials,
		ActionHandleRequest,
		ActionDeleteRequest,
		ActionViewAdminDashboard,
		ActionTrackProgress,
		ActionViewFeedback,
		ActionViewAllRequests,
	},
	RoleManager: {
		ActionSubmitManagerRequest,
		ActionViewManagerDashboard,
		ActionTrackProgress,
		ActionViewFeedback,
		ActionViewAllRequests,
	},
	RoleEmployee: {
		ActionSubmitEmployeeRequest,
		ActionSubmitFeedback,
		ActionViewEmployeeDashboard,
	},
}

// HasPermission checks if a role may perform action
func HasPermission(role Role, action Action) bool {
	actions, exists := RoleActions[role]
	if !exists {
		return false
	}

	for _, a := range actions {
		if a == action {
			return true
		}
	}

	return false
}

// Authorize is the single access decision for every operation. Unauthenticated
// principals are denied everything.
func Authorize(p Principal, action Action) bool {
	if !p.IsAuthenticated() {
		return false
	}
	return HasPermission(p.Role, action)
}

// Require returns ErrAccessDenied when p may not perform action.
func Require(p Principal, action Action) error {
	if !Authorize(p, action) {
		return ErrAccessDenied
	}
	return nil
}

// SubmitRequestAction picks the submit action matching p's role.
func SubmitRequestAction(p Principal) Action {
	if p.Role == RoleManager {
		return ActionSubmitManagerRequest
	}
	return ActionSubmitEmployeeRequest
}
