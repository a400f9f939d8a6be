package user

type Permission string

const (
	// Self service
	PermissionAttendanceSelf Permission = "attendance.self"
	PermissionTimesheetSelf  Permission = "timesheet.self"
	PermissionProjectView    Permission = "project.view"
	PermissionTaskMoveOwn    Permission = "task.move_own"
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Review
	PermissionApprovalReview  Permission = "approval.review"
	PermissionAttendanceTeam  Permission = "attendance.team"
	PermissionAttendanceWrite Permission = "attendance.write"
	PermissionReportsView     Permission = "reports.view"
	PermissionProjectManage   Permission = "project.manage"

	// Directory
	PermissionEmployeeView   Permission = "employee.view"
	PermissionEmployeeManage Permission = "employee.manage"
	PermissionRoleManage     Permission = "role.manage"
)

var selfService = []Permission{
	PermissionAttendanceSelf,
	PermissionTimesheetSelf,
	PermissionProjectView,
	PermissionTaskMoveOwn,
	PermissionViewOwnProfile,
}

var review = []Permission{
	PermissionApprovalReview,
	PermissionAttendanceTeam,
	PermissionAttendanceWrite,
	PermissionReportsView,
	PermissionProjectManage,
	PermissionEmployeeView,
}

var directory = []Permission{
	PermissionEmployeeManage,
}

// PermissionsFor returns the permission set granted to role. Unknown roles get none.
func PermissionsFor(role Role) []Permission {
	var out []Permission
	switch role {
	case RoleAdmin:
		out = append(out, selfService...)
		out = append(out, review...)
		out = append(out, directory...)
		out = append(out, PermissionRoleManage)
	case RoleHR:
		out = append(out, selfService...)
		out = append(out, review...)
		out = append(out, directory...)
	case RoleManager:
		out = append(out, selfService...)
		out = append(out, review...)
	case RoleEmployee:
		out = append(out, selfService...)
	}
	return out
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range PermissionsFor(role) {
		if p == permission {
			return true
		}
	}
	return false
}
