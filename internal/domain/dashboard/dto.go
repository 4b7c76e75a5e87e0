package dashboard

type AdminDashboardResponse struct {
	TotalUsers              int64 `json:"total_users"`
	TotalCourses            int64 `json:"total_courses"`
	PendingRequests         int64 `json:"pending_requests"`
	PendingEmployeeRequests int64 `json:"pending_employee_requests"`
}

type ManagerDashboardResponse struct {
	TotalCourses     int64 `json:"total_courses"`
	ApprovedRequests int64 `json:"approved_requests"`
	PendingRequests  int64 `json:"pending_requests"`
}

type EmployeeDashboardResponse struct {
	CoursesAssigned     int `json:"courses_assigned"`
	CoursesCompleted    int `json:"courses_completed"`
	CoursesInProgress   int `json:"courses_in_progress"`
	CoursesToStart      int `json:"courses_to_start"`
	UnreadNotifications int `json:"unread_notifications"`
}
