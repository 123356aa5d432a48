package db

import (
	"time"

	"cmms/internal/core/domain"
)

const (
	visibleToCondition = `EXISTS (SELECT 1 FROM task_assignees v WHERE v.task_id = t.id AND v.user_id = ?)`
	assigneeCondition  = `EXISTS (SELECT 1 FROM task_assignees fa WHERE fa.task_id = t.id AND fa.user_id = ?)`
)

// buildTaskWhere translates the visibility rule and the optional filters
// into AND-combined SQL conditions on the tasks alias t.
func buildTaskWhere(filter domain.TaskFilter, visibleTo *uint64) *whereClause {
	where := &whereClause{}

	if visibleTo != nil {
		where.add(visibleToCondition, *visibleTo)
	}
	if filter.AssigneeID != nil {
		where.add(assigneeCondition, *filter.AssigneeID)
	}
	if filter.Status != nil {
		if *filter.Status == domain.TaskStatusOpen {
			where.add(`t.status_field IS NULL`)
		} else {
			where.add(`t.status_field = ?`, string(*filter.Status))
		}
	}
	if filter.Category != "" {
		where.add(`t.category = ?`, string(filter.Category))
	}
	if filter.Priority != "" {
		where.add(`t.priority = ?`, string(filter.Priority))
	}

	addDateRange(where, "t.created_at", filter.CreatedAt)
	addDateRange(where, "t.closed_at", filter.ClosedAt)
	addDateRange(where, "t.deadline", filter.Deadline)

	return where
}

// addDateRange matches whole calendar days: from the start of From up to,
// but excluding, the day after To.
func addDateRange(where *whereClause, column string, r domain.DateRange) {
	if r.From != nil {
		where.add(column+` >= ?`, startOfDay(*r.From))
	}
	if r.To != nil {
		where.add(column+` < ?`, startOfDay(*r.To).AddDate(0, 0, 1))
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
