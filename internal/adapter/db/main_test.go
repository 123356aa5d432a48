package db

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"cmms/internal/core/domain"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := ConnectSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fixture struct {
	db        *sqlx.DB
	tasks     *TaskRepository
	users     *UserRepository
	buildings *BuildingRepository
	audit     *AuditRepository

	manager  domain.User
	alice    domain.User
	bob      domain.User
	office   domain.Building
	workshop domain.Building
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)

	f := &fixture{
		db:        db,
		tasks:     NewTaskRepository(db),
		users:     NewUserRepository(db),
		buildings: NewBuildingRepository(db),
		audit:     NewAuditRepository(db),
	}

	var err error
	f.manager, err = f.users.CreateUser(ctx, domain.NewUser{Email: "boss@example.com", FirstName: "jan", LastName: "kowalski", IsManager: true})
	require.NoError(t, err)
	f.alice, err = f.users.CreateUser(ctx, domain.NewUser{Email: "alice@example.com", FirstName: "alicja", LastName: "nowak"})
	require.NoError(t, err)
	f.bob, err = f.users.CreateUser(ctx, domain.NewUser{Email: "bob@example.com", FirstName: "bogdan", LastName: "zielony"})
	require.NoError(t, err)

	f.office, err = f.buildings.CreateBuilding(ctx, domain.BuildingInput{Name: "Biuro", Address: "Prosta 1"})
	require.NoError(t, err)
	f.workshop, err = f.buildings.CreateBuilding(ctx, domain.BuildingInput{Name: "Warsztat", Address: "Krzywa 2"})
	require.NoError(t, err)

	return f
}

func (f *fixture) createTask(t *testing.T, title string, createdAt time.Time, assignees ...domain.User) uint64 {
	t.Helper()
	ids := make([]uint64, 0, len(assignees))
	for _, user := range assignees {
		ids = append(ids, user.ID)
	}
	id, err := f.tasks.CreateTask(context.Background(), domain.NewTask{
		Title:       title,
		Description: "opis " + title,
		Category:    domain.TaskCategoryPlanned,
		Priority:    domain.TaskPriorityMedium,
		Deadline:    createdAt.Add(72 * time.Hour),
		CreatedAt:   createdAt,
		CreatedByID: &f.manager.ID,
		AssigneeIDs: ids,
		BuildingIDs: []uint64{f.office.ID},
	})
	require.NoError(t, err)
	return id
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}
