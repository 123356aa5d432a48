package domain

import "time"

const PageSize = 10

// DateRange bounds are inclusive calendar days; nil means unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

func (r DateRange) IsZero() bool { return r.From == nil && r.To == nil }

type TaskFilter struct {
	AssigneeID *uint64
	Status     *TaskStatus
	Category   TaskCategory
	Priority   TaskPriority
	CreatedAt  DateRange
	ClosedAt   DateRange
	Deadline   DateRange
}

// TaskQuery is the filter plus the visibility and paging the repository applies.
type TaskQuery struct {
	Filter TaskFilter
	// VisibleTo restricts results to tasks assigned to this user; nil for managers.
	VisibleTo *uint64
	Limit     int
	Offset    int
}

type DashboardStats struct {
	Total       int
	Open        int
	Closed      int
	Overdue     int
	ByCategory  []LabelCount
	ByPriority  []LabelCount
	AvgClosure  *time.Duration
	RecentTasks []Task
}

type LabelCount struct {
	Code  string
	Label string
	Count int
}
