package service

import (
	"context"
	"time"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

type DashboardService struct {
	tasks ports.TaskRepository
	now   func() time.Time
}

func NewDashboardService(tasks ports.TaskRepository) *DashboardService {
	return &DashboardService{tasks: tasks, now: defaultClock}
}

func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Dashboard summarizes the tasks visible to actor. Average closure time
// is reported to managers only.
func (s *DashboardService) Dashboard(ctx context.Context, actor *domain.Actor) (domain.DashboardStats, error) {
	if err := Authorize(actor, OpDashboard, nil); err != nil {
		return domain.DashboardStats{}, err
	}

	stats, err := s.tasks.Stats(ctx, visibleTo(actor), s.now())
	if err != nil {
		return domain.DashboardStats{}, err
	}
	if !actor.IsManager() {
		stats.AvgClosure = nil
	}
	return stats, nil
}

var _ ports.DashboardService = (*DashboardService)(nil)
