package ports

import (
	"context"
	"time"

	"cmms/internal/core/domain"
)

type TaskRepository interface {
	CreateTask(ctx context.Context, task domain.NewTask) (uint64, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	ListTasks(ctx context.Context, query domain.TaskQuery) ([]domain.Task, int, error)
	UpdateTask(ctx context.Context, id uint64, changes domain.TaskChanges) ([]domain.Attachment, error)
	UpdateStatus(ctx context.Context, id uint64, change domain.StatusChange) (*domain.TaskComment, error)
	DeleteTask(ctx context.Context, id uint64) error
	CreateComment(ctx context.Context, taskID, userID uint64, text string, at time.Time) (domain.TaskComment, error)
	Stats(ctx context.Context, visibleTo *uint64, now time.Time) (domain.DashboardStats, error)
}

type TaskService interface {
	ListTasks(ctx context.Context, actor *domain.Actor, filter domain.TaskFilter, page int) (domain.TaskPage, error)
	GetTask(ctx context.Context, actor *domain.Actor, id uint64) (domain.Task, error)
	CreateTask(ctx context.Context, actor *domain.Actor, input domain.TaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, actor *domain.Actor, id uint64, input domain.TaskUpdateInput) (domain.Task, error)
	SetStatusEmployee(ctx context.Context, actor *domain.Actor, id uint64, status string) (domain.Task, error)
	SetStatusManagerGet(ctx context.Context, actor *domain.Actor, id uint64, status string) (domain.Task, error)
	SetStatusManagerDecline(ctx context.Context, actor *domain.Actor, id uint64, commentText string) (domain.DeclineResult, error)
	DeleteTask(ctx context.Context, actor *domain.Actor, id uint64) error
	AddComment(ctx context.Context, actor *domain.Actor, id uint64, commentText string) (domain.TaskComment, error)
}

type DashboardService interface {
	Dashboard(ctx context.Context, actor *domain.Actor) (domain.DashboardStats, error)
}
