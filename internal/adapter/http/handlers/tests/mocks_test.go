package tests

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"cmms/internal/adapter/http/middleware"
	"cmms/internal/core/domain"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, actor *domain.Actor, filter domain.TaskFilter, page int) (domain.TaskPage, error) {
	args := m.Called(ctx, actor, filter, page)
	return args.Get(0).(domain.TaskPage), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, actor *domain.Actor, id uint64) (domain.Task, error) {
	args := m.Called(ctx, actor, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, actor *domain.Actor, input domain.TaskInput) (domain.Task, error) {
	args := m.Called(ctx, actor, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, actor *domain.Actor, id uint64, input domain.TaskUpdateInput) (domain.Task, error) {
	args := m.Called(ctx, actor, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) SetStatusEmployee(ctx context.Context, actor *domain.Actor, id uint64, status string) (domain.Task, error) {
	args := m.Called(ctx, actor, id, status)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) SetStatusManagerGet(ctx context.Context, actor *domain.Actor, id uint64, status string) (domain.Task, error) {
	args := m.Called(ctx, actor, id, status)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) SetStatusManagerDecline(ctx context.Context, actor *domain.Actor, id uint64, commentText string) (domain.DeclineResult, error) {
	args := m.Called(ctx, actor, id, commentText)
	return args.Get(0).(domain.DeclineResult), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, actor *domain.Actor, id uint64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *taskServiceMock) AddComment(ctx context.Context, actor *domain.Actor, id uint64, commentText string) (domain.TaskComment, error) {
	args := m.Called(ctx, actor, id, commentText)
	return args.Get(0).(domain.TaskComment), args.Error(1)
}

type buildingServiceMock struct {
	mock.Mock
}

func (m *buildingServiceMock) ListBuildings(ctx context.Context, actor *domain.Actor, page int) (domain.BuildingPage, error) {
	args := m.Called(ctx, actor, page)
	return args.Get(0).(domain.BuildingPage), args.Error(1)
}

func (m *buildingServiceMock) CreateBuilding(ctx context.Context, actor *domain.Actor, input domain.BuildingInput) (domain.Building, error) {
	args := m.Called(ctx, actor, input)
	return args.Get(0).(domain.Building), args.Error(1)
}

func (m *buildingServiceMock) UpdateBuilding(ctx context.Context, actor *domain.Actor, id uint64, input domain.BuildingInput) (domain.Building, error) {
	args := m.Called(ctx, actor, id, input)
	return args.Get(0).(domain.Building), args.Error(1)
}

func (m *buildingServiceMock) DeleteBuilding(ctx context.Context, actor *domain.Actor, id uint64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

var (
	managerActor  = &domain.Actor{User: &domain.User{ID: 1, Email: "boss@example.com", IsManager: true}}
	employeeActor = &domain.Actor{User: &domain.User{ID: 2, Email: "e1@example.com"}}
)

// withActor stands in for the bearer token check.
func withActor(actor *domain.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetActor(c, actor)
		c.Next()
	}
}
