package db

import (
	"context"
	"time"

	"cmms/internal/core/domain"
)

const (
	recentTasksLimit = 5

	taskCountsQuery = `
SELECT
  COUNT(*) AS total,
  COALESCE(SUM(CASE WHEN t.status_field IS NULL THEN 1 ELSE 0 END), 0) AS open_count,
  COALESCE(SUM(CASE WHEN t.status_field = 'accepted' THEN 1 ELSE 0 END), 0) AS closed_count,
  COALESCE(SUM(CASE WHEN t.status_field IS NULL AND t.deadline < ? THEN 1 ELSE 0 END), 0) AS overdue_count
FROM tasks t`
)

type taskCountsRow struct {
	Total   int `db:"total"`
	Open    int `db:"open_count"`
	Closed  int `db:"closed_count"`
	Overdue int `db:"overdue_count"`
}

type groupCountRow struct {
	Code  string `db:"code"`
	Count int    `db:"task_count"`
}

type closureRow struct {
	CreatedAt time.Time `db:"created_at"`
	ClosedAt  time.Time `db:"closed_at"`
}

// Stats aggregates the tasks visible to visibleTo (all tasks when nil).
func (r *TaskRepository) Stats(ctx context.Context, visibleTo *uint64, now time.Time) (domain.DashboardStats, error) {
	where := buildTaskWhere(domain.TaskFilter{}, visibleTo)

	var counts taskCountsRow
	args := append([]any{now.UTC()}, where.args...)
	if err := r.db.GetContext(ctx, &counts, r.db.Rebind(taskCountsQuery+where.String()), args...); err != nil {
		return domain.DashboardStats{}, err
	}

	byCategory, err := r.groupCounts(ctx, "t.category", where)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	byPriority, err := r.groupCounts(ctx, "t.priority", where)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	avg, err := r.averageClosure(ctx, where)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	recent, err := r.selectTasks(ctx, where, recentTasksLimit, 0)
	if err != nil {
		return domain.DashboardStats{}, err
	}

	stats := domain.DashboardStats{
		Total:       counts.Total,
		Open:        counts.Open,
		Closed:      counts.Closed,
		Overdue:     counts.Overdue,
		ByCategory:  make([]domain.LabelCount, 0, len(byCategory)),
		ByPriority:  make([]domain.LabelCount, 0, len(byPriority)),
		AvgClosure:  avg,
		RecentTasks: recent,
	}
	for _, row := range byCategory {
		stats.ByCategory = append(stats.ByCategory, domain.LabelCount{
			Code: row.Code, Label: domain.TaskCategory(row.Code).Label(), Count: row.Count,
		})
	}
	for _, row := range byPriority {
		stats.ByPriority = append(stats.ByPriority, domain.LabelCount{
			Code: row.Code, Label: domain.TaskPriority(row.Code).Label(), Count: row.Count,
		})
	}
	return stats, nil
}

// groupCounts counts tasks per value of column, which must be a trusted
// column expression.
func (r *TaskRepository) groupCounts(ctx context.Context, column string, where *whereClause) ([]groupCountRow, error) {
	query := `SELECT ` + column + ` AS code, COUNT(*) AS task_count FROM tasks t` + where.String() +
		` GROUP BY ` + column + ` ORDER BY ` + column

	var rows []groupCountRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), where.args...); err != nil {
		return nil, err
	}
	return rows, nil
}

// averageClosure is computed in Go so both drivers share one query.
func (r *TaskRepository) averageClosure(ctx context.Context, where *whereClause) (*time.Duration, error) {
	closed := &whereClause{
		conditions: append([]string{`t.status_field = 'accepted'`, `t.closed_at IS NOT NULL`}, where.conditions...),
		args:       where.args,
	}
	query := `SELECT t.created_at, t.closed_at FROM tasks t` + closed.String()

	var rows []closureRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), closed.args...); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	var sum time.Duration
	for _, row := range rows {
		sum += row.ClosedAt.Sub(row.CreatedAt)
	}
	avg := sum / time.Duration(len(rows))
	return &avg, nil
}
