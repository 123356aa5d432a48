package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmms/internal/app/service"
	"cmms/internal/core/domain"
)

func TestBuildingService_Lifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	buildings := service.NewBuildingService(e.buildings, e.audit)
	e.reset(t)

	created, err := buildings.CreateBuilding(ctx, e.actor(e.manager), domain.BuildingInput{Name: " Magazyn ", Address: "Boczna 5"})
	require.NoError(t, err)
	assert.Equal(t, "Magazyn", created.Name)

	updated, err := buildings.UpdateBuilding(ctx, e.actor(e.manager), created.ID, domain.BuildingInput{Name: "Magazyn B", Address: "Boczna 5"})
	require.NoError(t, err)
	assert.Equal(t, "Magazyn B", updated.Name)

	require.NoError(t, buildings.DeleteBuilding(ctx, e.actor(e.manager), created.ID))

	entries := e.entries(t)
	require.Len(t, entries, 3)
	assert.Equal(t, domain.AuditBuildingCreated, entries[0].Action)
	assert.Equal(t, "Budynek 'Magazyn' został utworzony.", entries[0].Description)
	assert.Equal(t, domain.AuditBuildingUpdated, entries[1].Action)
	assert.Equal(t, "Budynek 'Magazyn B' został zaktualizowany.", entries[1].Description)
	assert.Equal(t, domain.AuditBuildingDeleted, entries[2].Action)
	assert.Equal(t, "Budynek 'Magazyn B' został usunięty.", entries[2].Description)

	err = buildings.DeleteBuilding(ctx, e.actor(e.manager), created.ID)
	assert.ErrorIs(t, err, domain.ErrBuildingNotFound)
}

func TestBuildingService_Rules(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	buildings := service.NewBuildingService(e.buildings, e.audit)
	e.reset(t)

	_, err := buildings.CreateBuilding(ctx, e.actor(e.alice), domain.BuildingInput{Name: "X", Address: "Y"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = buildings.CreateBuilding(ctx, e.actor(e.manager), domain.BuildingInput{Name: "  "})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{domain.FieldRequired}, validationErr.Fields["name"])
	assert.Equal(t, []string{domain.FieldRequired}, validationErr.Fields["address"])
	assert.Empty(t, e.actions(t))

	page, err := buildings.ListBuildings(ctx, e.actor(e.alice), 1)
	require.NoError(t, err)
	require.Len(t, page.Buildings, 2)
	assert.Equal(t, "Biuro", page.Buildings[0].Name)

	_, err = buildings.ListBuildings(ctx, e.actor(e.alice), 2)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestBuildingService_DeleteKeepsTasks(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	buildings := service.NewBuildingService(e.buildings, e.audit)
	input := e.input("T1", e.alice)
	input.BuildingIDs = []uint64{e.office.ID, e.workshop.ID}
	task, err := e.service.CreateTask(ctx, e.actor(e.manager), input)
	require.NoError(t, err)

	require.NoError(t, buildings.DeleteBuilding(ctx, e.actor(e.manager), e.office.ID))

	stored, err := e.service.GetTask(ctx, e.actor(e.manager), task.ID)
	require.NoError(t, err)
	require.Len(t, stored.Buildings, 1)
	assert.Equal(t, e.workshop.ID, stored.Buildings[0].ID)
}

func TestUserService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	users := service.NewUserService(e.users, e.audit)
	e.reset(t)

	created, err := users.CreateUser(ctx, nil, domain.NewUser{Email: "nowy@example.com", FirstName: "anna", LastName: "wiśniewska"})
	require.NoError(t, err)
	assert.False(t, created.IsManager)
	assert.True(t, created.FirstLogin)

	entries := e.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.AuditUserAdded, entries[0].Action)
	assert.Equal(t, "id="+itoa(created.ID)+", Anna Wiśniewska", entries[0].Description)
	assert.Nil(t, entries[0].Email)

	_, err = users.CreateUser(ctx, e.actor(e.manager), domain.NewUser{Email: "brak-malpy", FirstName: "a"})
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{domain.FieldInvalid}, validationErr.Fields["email"])
	assert.Equal(t, []string{domain.FieldRequired}, validationErr.Fields["last_name"])

	_, err = users.CreateUser(ctx, e.actor(e.manager), domain.NewUser{Email: "E1@example.com", FirstName: "a", LastName: "b"})
	var persistenceErr *domain.PersistenceError
	assert.ErrorAs(t, err, &persistenceErr)

	_, err = users.ListUsers(ctx, e.actor(e.alice))
	assert.ErrorIs(t, err, domain.ErrForbidden)
	list, err := users.ListUsers(ctx, e.actor(e.manager))
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestDashboardService(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	dashboard := service.NewDashboardService(e.tasks).WithClock(func() time.Time { return e.now })

	first := e.createTask(t, "T1", e.alice)
	e.createTask(t, "T2", e.bob)
	e.now = e.now.AddDate(0, 0, 2)
	_, err := e.service.SetStatusManagerGet(ctx, e.actor(e.manager), first.ID, "accepted")
	require.NoError(t, err)
	e.now = e.now.AddDate(0, 0, 30)

	stats, err := dashboard.Dashboard(ctx, e.actor(e.manager))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Open)
	assert.Equal(t, 1, stats.Closed)
	assert.Equal(t, 1, stats.Overdue)
	require.NotNil(t, stats.AvgClosure)
	assert.Equal(t, 48*time.Hour, *stats.AvgClosure)

	mine, err := dashboard.Dashboard(ctx, e.actor(e.alice))
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Total)
	assert.Equal(t, 0, mine.Overdue)
	assert.Nil(t, mine.AvgClosure)

	_, err = dashboard.Dashboard(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
