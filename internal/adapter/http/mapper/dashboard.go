package mapper

import (
	"fmt"
	"time"

	"cmms/internal/adapter/http/dto"
	"cmms/internal/core/domain"
)

func ToDashboard(stats domain.DashboardStats) dto.Dashboard {
	out := dto.Dashboard{
		Total:       stats.Total,
		Open:        stats.Open,
		Closed:      stats.Closed,
		Overdue:     stats.Overdue,
		ByCategory:  toLabelCounts(stats.ByCategory),
		ByPriority:  toLabelCounts(stats.ByPriority),
		RecentTasks: ToTaskItems(stats.RecentTasks),
	}
	if stats.AvgClosure != nil {
		value := FormatClosure(*stats.AvgClosure)
		out.AvgClosure = &value
	}
	return out
}

// FormatClosure renders a duration as "D d. H g. M min.", dropping seconds.
func FormatClosure(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	return fmt.Sprintf("%d d. %d g. %d min.", minutes/(24*60), minutes/60%24, minutes%60)
}

func toLabelCounts(counts []domain.LabelCount) []dto.LabelCount {
	out := make([]dto.LabelCount, 0, len(counts))
	for _, count := range counts {
		out = append(out, dto.LabelCount{Code: count.Code, Label: count.Label, Count: count.Count})
	}
	return out
}
