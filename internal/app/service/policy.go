package service

import "cmms/internal/core/domain"

type Operation string

const (
	OpListTasks           Operation = "list_tasks"
	OpGetTask             Operation = "get_task"
	OpCreateTask          Operation = "create_task"
	OpUpdateTask          Operation = "update_task"
	OpSetStatusEmployee   Operation = "set_status_employee"
	OpSetStatusManagerGet Operation = "set_status_manager_get"
	OpDeclineTask         Operation = "set_status_manager_decline"
	OpDeleteTask          Operation = "delete_task"
	OpAddComment          Operation = "add_comment"
	OpListBuildings       Operation = "list_buildings"
	OpManageBuildings     Operation = "manage_buildings"
	OpListAudit           Operation = "list_audit"
	OpListUsers           Operation = "list_users"
	OpCreateUser          Operation = "create_user"
	OpDashboard           Operation = "dashboard"
)

// Authorize decides whether actor may perform op on task (nil when the
// operation is not bound to a task).
func Authorize(actor *domain.Actor, op Operation, task *domain.Task) error {
	// A nil actor is the system itself (CLI, scheduled jobs); it may only add users.
	if actor == nil || actor.User == nil {
		if op == OpCreateUser {
			return nil
		}
		return domain.ErrForbidden
	}

	switch op {
	case OpListTasks, OpListBuildings, OpDashboard:
		return nil
	case OpCreateTask, OpUpdateTask, OpSetStatusManagerGet, OpDeclineTask, OpDeleteTask,
		OpManageBuildings, OpListAudit, OpListUsers, OpCreateUser:
		if actor.IsManager() {
			return nil
		}
	case OpGetTask, OpSetStatusEmployee, OpAddComment:
		if actor.IsManager() || (task != nil && task.IsAssignee(actor.UserID())) {
			return nil
		}
	}
	return domain.ErrForbidden
}
