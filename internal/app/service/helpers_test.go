package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	dbadapter "cmms/internal/adapter/db"
	"cmms/internal/adapter/storage"
	"cmms/internal/app/service"
	"cmms/internal/core/domain"
)

var errBoom = errors.New("database is on fire")

type recordingMailer struct {
	mu     sync.Mutex
	sent   []domain.Email
	failed error
}

func (m *recordingMailer) Send(_ context.Context, email domain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed != nil {
		return m.failed
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *recordingMailer) emails() []domain.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Email(nil), m.sent...)
}

// flakyTasks fails selected repository calls.
type flakyTasks struct {
	*dbadapter.TaskRepository
	createErr error
	updateErr error
	statusErr error
	deleteErr error
}

func (f *flakyTasks) CreateTask(ctx context.Context, task domain.NewTask) (uint64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.TaskRepository.CreateTask(ctx, task)
}

func (f *flakyTasks) UpdateTask(ctx context.Context, id uint64, changes domain.TaskChanges) ([]domain.Attachment, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.TaskRepository.UpdateTask(ctx, id, changes)
}

func (f *flakyTasks) UpdateStatus(ctx context.Context, id uint64, change domain.StatusChange) (*domain.TaskComment, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return f.TaskRepository.UpdateStatus(ctx, id, change)
}

func (f *flakyTasks) DeleteTask(ctx context.Context, id uint64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.TaskRepository.DeleteTask(ctx, id)
}

type env struct {
	db        *sqlx.DB
	tasks     *flakyTasks
	users     *dbadapter.UserRepository
	buildings *dbadapter.BuildingRepository
	auditRepo *dbadapter.AuditRepository
	audit     *service.AuditLogService
	mediaRoot string
	blobs     *storage.FileStore
	mailer    *recordingMailer
	service   *service.TaskService
	now       time.Time

	manager  domain.User
	alice    domain.User
	bob      domain.User
	office   domain.Building
	workshop domain.Building
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	db, err := dbadapter.ConnectSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	e := &env{
		db:        db,
		tasks:     &flakyTasks{TaskRepository: dbadapter.NewTaskRepository(db)},
		users:     dbadapter.NewUserRepository(db),
		buildings: dbadapter.NewBuildingRepository(db),
		auditRepo: dbadapter.NewAuditRepository(db),
		mediaRoot: t.TempDir(),
		mailer:    &recordingMailer{},
		now:       time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}
	e.audit = service.NewAuditLogService(e.auditRepo)
	e.blobs = storage.NewFileStore(e.mediaRoot)
	notifier := service.NewNotificationService(e.mailer, e.blobs, e.audit, "cmms@example.com")
	e.service = service.NewTaskService(e.tasks, e.users, e.buildings, e.blobs, e.audit, notifier).
		WithClock(func() time.Time { return e.now })

	e.manager, err = e.users.CreateUser(ctx, domain.NewUser{Email: "boss@example.com", FirstName: "jan", LastName: "kowalski", IsManager: true})
	require.NoError(t, err)
	e.alice, err = e.users.CreateUser(ctx, domain.NewUser{Email: "e1@example.com", FirstName: "alicja", LastName: "nowak"})
	require.NoError(t, err)
	e.bob, err = e.users.CreateUser(ctx, domain.NewUser{Email: "e2@example.com", FirstName: "bogdan", LastName: "zielony"})
	require.NoError(t, err)

	e.office, err = e.buildings.CreateBuilding(ctx, domain.BuildingInput{Name: "Biuro", Address: "Prosta 1"})
	require.NoError(t, err)
	e.workshop, err = e.buildings.CreateBuilding(ctx, domain.BuildingInput{Name: "Warsztat", Address: "Krzywa 2"})
	require.NoError(t, err)

	return e
}

func (e *env) actor(user domain.User) *domain.Actor {
	u := user
	return &domain.Actor{User: &u, RealIP: "10.0.0.1", ClientIP: "192.168.1.5"}
}

func (e *env) input(title string, assignees ...domain.User) domain.TaskInput {
	ids := make([]uint64, 0, len(assignees))
	for _, user := range assignees {
		ids = append(ids, user.ID)
	}
	deadline := time.Date(2024, 3, 8, 14, 0, 0, 0, time.UTC)
	return domain.TaskInput{
		Title:       title,
		Description: "Opis " + title,
		Category:    domain.TaskCategoryPlanned,
		Priority:    domain.TaskPriorityHigh,
		Deadline:    &deadline,
		AssigneeIDs: ids,
		BuildingIDs: []uint64{e.office.ID},
	}
}

func (e *env) createTask(t *testing.T, title string, assignees ...domain.User) domain.Task {
	t.Helper()
	task, err := e.service.CreateTask(context.Background(), e.actor(e.manager), e.input(title, assignees...))
	require.NoError(t, err)
	return task
}

// entries returns the audit trail oldest first.
func (e *env) entries(t *testing.T) []domain.AuditEntry {
	t.Helper()
	entries, _, err := e.auditRepo.ListEntries(context.Background(), "", 1000, 0)
	require.NoError(t, err)
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries
}

func (e *env) actions(t *testing.T) []domain.AuditAction {
	t.Helper()
	entries := e.entries(t)
	actions := make([]domain.AuditAction, 0, len(entries))
	for _, entry := range entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

// reset forgets audit entries and mail recorded so far.
func (e *env) reset(t *testing.T) {
	t.Helper()
	_, err := e.db.Exec(`DELETE FROM audit_entries`)
	require.NoError(t, err)
	e.mailer.mu.Lock()
	e.mailer.sent = nil
	e.mailer.mu.Unlock()
}

func (e *env) storedFiles(t *testing.T) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(e.mediaRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, filepath.Base(path))
		}
		return nil
	})
	require.NoError(t, err)
	return files
}
