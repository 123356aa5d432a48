package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

// TaskService is the task lifecycle controller. Every mutating operation
// persists, then writes its audit entry, then notifies.
type TaskService struct {
	tasks     ports.TaskRepository
	users     ports.UserRepository
	buildings ports.BuildingRepository
	blobs     ports.BlobStore
	audit     ports.AuditLog
	notifier  *NotificationService
	now       func() time.Time
}

func NewTaskService(
	tasks ports.TaskRepository,
	users ports.UserRepository,
	buildings ports.BuildingRepository,
	blobs ports.BlobStore,
	audit ports.AuditLog,
	notifier *NotificationService,
) *TaskService {
	return &TaskService{
		tasks:     tasks,
		users:     users,
		buildings: buildings,
		blobs:     blobs,
		audit:     audit,
		notifier:  notifier,
		now:       defaultClock,
	}
}

// WithClock replaces the time source.
func (s *TaskService) WithClock(now func() time.Time) *TaskService {
	s.now = func() time.Time { return now().UTC().Truncate(time.Microsecond) }
	return s
}

func (s *TaskService) ListTasks(ctx context.Context, actor *domain.Actor, filter domain.TaskFilter, page int) (domain.TaskPage, error) {
	if err := Authorize(actor, OpListTasks, nil); err != nil {
		return domain.TaskPage{}, err
	}

	page = normalizePage(page)
	query := domain.TaskQuery{
		Filter:    filter,
		VisibleTo: visibleTo(actor),
		Limit:     domain.PageSize,
		Offset:    pageOffset(page),
	}
	tasks, total, err := s.tasks.ListTasks(ctx, query)
	if err != nil {
		return domain.TaskPage{}, err
	}
	pages, err := checkPage(page, total)
	if err != nil {
		return domain.TaskPage{}, err
	}

	return domain.TaskPage{
		Tasks:       tasks,
		Page:        page,
		NumPages:    pages,
		Total:       total,
		QueryParams: EncodeTaskFilter(filter),
	}, nil
}

func (s *TaskService) GetTask(ctx context.Context, actor *domain.Actor, id uint64) (domain.Task, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if err := Authorize(actor, OpGetTask, &task); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, actor *domain.Actor, input domain.TaskInput) (domain.Task, error) {
	if err := Authorize(actor, OpCreateTask, nil); err != nil {
		return domain.Task{}, err
	}

	input = normalizeTaskInput(input)
	if err := s.validateTaskInput(ctx, input); err != nil {
		if isValidation(err) {
			return domain.Task{}, err
		}
		return domain.Task{}, s.fail(ctx, actor, domain.AuditTaskCreationFailed, "create task", input.Title, err)
	}

	now := s.now()
	stored, err := s.storeUploads(ctx, input.Attachments, now)
	if err != nil {
		return domain.Task{}, s.fail(ctx, actor, domain.AuditTaskCreationFailed, "create task", input.Title, err)
	}

	var createdBy *uint64
	if id := actor.UserID(); id != 0 {
		createdBy = &id
	}
	id, err := s.tasks.CreateTask(ctx, domain.NewTask{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Deadline:    input.Deadline.UTC(),
		CreatedAt:   now,
		CreatedByID: createdBy,
		AssigneeIDs: input.AssigneeIDs,
		BuildingIDs: input.BuildingIDs,
		Attachments: stored,
	})
	if err != nil {
		s.discardBlobs(ctx, stored)
		return domain.Task{}, s.fail(ctx, actor, domain.AuditTaskCreationFailed, "create task", input.Title, err)
	}

	s.audit.LogAction(ctx, domain.AuditTaskCreated, actor, fmt.Sprintf("id=%d, %s", id, input.Title))

	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		zap.L().Error("failed to reload created task", zap.Uint64("task_id", id), zap.Error(err))
		return domain.Task{ID: id, Title: input.Title}, nil
	}
	s.notifier.TaskCreated(ctx, actor, task)
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, actor *domain.Actor, id uint64, input domain.TaskUpdateInput) (domain.Task, error) {
	existing, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if err := Authorize(actor, OpUpdateTask, &existing); err != nil {
		return domain.Task{}, err
	}

	input.TaskInput = normalizeTaskInput(input.TaskInput)
	if err := s.validateTaskInput(ctx, input.TaskInput); err != nil {
		if isValidation(err) {
			return domain.Task{}, err
		}
		return domain.Task{}, s.fail(ctx, actor, domain.AuditTaskUpdateFailed, "update task", existing.Title, err)
	}

	stored, err := s.storeUploads(ctx, input.Attachments, s.now())
	if err != nil {
		return domain.Task{}, s.fail(ctx, actor, domain.AuditTaskUpdateFailed, "update task", existing.Title, err)
	}

	removed, err := s.tasks.UpdateTask(ctx, id, domain.TaskChanges{
		Title:               input.Title,
		Description:         input.Description,
		Category:            input.Category,
		Priority:            input.Priority,
		Deadline:            input.Deadline.UTC(),
		AssigneeIDs:         input.AssigneeIDs,
		BuildingIDs:         input.BuildingIDs,
		AddAttachments:      stored,
		RemoveAttachmentIDs: ownAttachmentIDs(existing, input.RemoveAttachmentIDs),
	})
	if err != nil {
		s.discardBlobs(ctx, stored)
		return domain.Task{}, s.fail(ctx, actor, domain.AuditTaskUpdateFailed, "update task", existing.Title, err)
	}
	s.discardAttachments(ctx, removed)

	s.audit.LogAction(ctx, domain.AuditTaskUpdated, actor, fmt.Sprintf("id=%d, %s", id, input.Title))

	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		zap.L().Error("failed to reload updated task", zap.Uint64("task_id", id), zap.Error(err))
		return domain.Task{ID: id, Title: input.Title}, nil
	}
	s.notifier.TaskChanged(ctx, actor, task)
	return task, nil
}

// SetStatusEmployee marks the task done ("confirmed") or reverts it ("none").
// closed_at is never touched here.
func (s *TaskService) SetStatusEmployee(ctx context.Context, actor *domain.Actor, id uint64, status string) (domain.Task, error) {
	task, err := s.openTask(ctx, actor, OpSetStatusEmployee, id)
	if err != nil {
		return domain.Task{}, err
	}

	var (
		next        domain.TaskStatus
		description string
	)
	switch status {
	case domain.TaskStatusNone:
		next = domain.TaskStatusOpen
		description = fmt.Sprintf("id=%d, %s -> Wykonanie zadania cofnięte.", task.ID, task.Title)
	case string(domain.TaskStatusConfirmed):
		next = domain.TaskStatusConfirmed
		description = fmt.Sprintf("id=%d, %s -> %s", task.ID, task.Title, next)
	default:
		return domain.Task{}, domain.ErrInvalidStatus
	}

	if _, err := s.tasks.UpdateStatus(ctx, id, domain.StatusChange{Status: next}); err != nil {
		return domain.Task{}, s.fail(ctx, actor, domain.AuditTaskUpdateFailed, "update task status", task.Title, err)
	}
	s.audit.LogAction(ctx, domain.AuditTaskUpdated, actor, description)

	task = s.reload(ctx, task)
	task.Status = next
	s.notifier.EmployeeStatusChanged(ctx, actor, task)
	return task, nil
}

// SetStatusManagerGet confirms a task and closes it.
func (s *TaskService) SetStatusManagerGet(ctx context.Context, actor *domain.Actor, id uint64, status string) (domain.Task, error) {
	task, err := s.openTask(ctx, actor, OpSetStatusManagerGet, id)
	if err != nil {
		return domain.Task{}, err
	}
	if status != string(domain.TaskStatusAccepted) {
		return domain.Task{}, domain.ErrInvalidStatus
	}

	closedAt := s.now()
	change := domain.StatusChange{Status: domain.TaskStatusAccepted, SetClosedAt: &closedAt}
	if _, err := s.tasks.UpdateStatus(ctx, id, change); err != nil {
		return domain.Task{}, s.fail(ctx, actor, domain.AuditTaskUpdateFailed, "update task status", task.Title, err)
	}
	s.audit.LogAction(ctx, domain.AuditTaskUpdated, actor,
		fmt.Sprintf("id=%d, %s -> %s", task.ID, task.Title, domain.TaskStatusAccepted))

	task = s.reload(ctx, task)
	task.Status = domain.TaskStatusAccepted
	task.ClosedAt = &closedAt
	s.notifier.ManagerStatusChanged(ctx, actor, task)
	return task, nil
}

// SetStatusManagerDecline declines the task. An empty comment is reported in
// the result but does not stop the status change.
func (s *TaskService) SetStatusManagerDecline(ctx context.Context, actor *domain.Actor, id uint64, commentText string) (domain.DeclineResult, error) {
	task, err := s.openTask(ctx, actor, OpDeclineTask, id)
	if err != nil {
		return domain.DeclineResult{}, err
	}

	change := domain.StatusChange{Status: domain.TaskStatusDeclined}
	commentErrors := validateComment(commentText)
	if commentErrors.Empty() {
		change.Comment = &domain.NewComment{
			UserID:    actor.UserID(),
			Text:      strings.TrimSpace(commentText),
			CreatedAt: s.now(),
		}
	}

	comment, err := s.tasks.UpdateStatus(ctx, id, change)
	if err != nil {
		return domain.DeclineResult{}, s.fail(ctx, actor, domain.AuditTaskUpdateFailed, "update task status", task.Title, err)
	}
	s.audit.LogAction(ctx, domain.AuditTaskUpdated, actor,
		fmt.Sprintf("id=%d, %s -> %s", task.ID, task.Title, domain.TaskStatusDeclined))

	task = s.reload(ctx, task)
	task.Status = domain.TaskStatusDeclined
	s.notifier.ManagerStatusChanged(ctx, actor, task)

	result := domain.DeclineResult{Task: task, Comment: comment}
	if !commentErrors.Empty() {
		result.CommentErrors = commentErrors
	}
	return result, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actor *domain.Actor, id uint64) error {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(actor, OpDeleteTask, &task); err != nil {
		return err
	}

	emails := task.AssigneeEmails()
	if err := s.tasks.DeleteTask(ctx, id); err != nil {
		return s.fail(ctx, actor, domain.AuditTaskDeleteFailed, "delete task", task.Title, err)
	}
	s.discardAttachments(ctx, task.Attachments)

	s.audit.LogAction(ctx, domain.AuditTaskDeleted, actor, fmt.Sprintf("id=%d, %s", id, task.Title))
	s.notifier.TaskDeleted(ctx, actor, task.Title, emails)
	return nil
}

func (s *TaskService) AddComment(ctx context.Context, actor *domain.Actor, id uint64, commentText string) (domain.TaskComment, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return domain.TaskComment{}, err
	}
	if err := Authorize(actor, OpAddComment, &task); err != nil {
		return domain.TaskComment{}, err
	}
	if errs := validateComment(commentText); !errs.Empty() {
		return domain.TaskComment{}, domain.NewValidationError(errs)
	}

	text := strings.TrimSpace(commentText)
	comment, err := s.tasks.CreateComment(ctx, id, actor.UserID(), text, s.now())
	if err != nil {
		return domain.TaskComment{}, s.fail(ctx, actor, domain.AuditTaskUpdateFailed, "create comment", task.Title, err)
	}
	s.audit.LogAction(ctx, domain.AuditTaskCommentCreated, actor,
		fmt.Sprintf("id=%d, %s -> %s", task.ID, task.Title, text))

	s.notifier.CommentAdded(ctx, actor, s.reload(ctx, task))
	return comment, nil
}

// openTask loads and authorizes a task for a status change. Accepted tasks
// are closed for good.
func (s *TaskService) openTask(ctx context.Context, actor *domain.Actor, op Operation, id uint64) (domain.Task, error) {
	task, err := s.tasks.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if err := Authorize(actor, op, &task); err != nil {
		return domain.Task{}, err
	}
	if task.Status == domain.TaskStatusAccepted {
		return domain.Task{}, domain.ErrTaskClosed
	}
	return task, nil
}

// reload returns the stored task, or fallback when it cannot be read.
func (s *TaskService) reload(ctx context.Context, fallback domain.Task) domain.Task {
	task, err := s.tasks.GetTask(ctx, fallback.ID)
	if err != nil {
		zap.L().Error("failed to reload task", zap.Uint64("task_id", fallback.ID), zap.Error(err))
		return fallback
	}
	return task
}

// fail records the failed attempt and wraps err for the caller.
func (s *TaskService) fail(ctx context.Context, actor *domain.Actor, action domain.AuditAction, op, title string, err error) error {
	zap.L().Error("task operation failed", zap.String("op", op), zap.String("title", title), zap.Error(err))
	s.audit.LogAction(context.WithoutCancel(ctx), action, actor, fmt.Sprintf("%s: %v", title, err))
	return &domain.PersistenceError{Op: op, Err: err}
}

func (s *TaskService) validateTaskInput(ctx context.Context, input domain.TaskInput) error {
	errs := input.Validate()

	if len(input.AssigneeIDs) > 0 {
		users, err := s.users.GetUsers(ctx, input.AssigneeIDs)
		if err != nil {
			return err
		}
		if len(users) != len(input.AssigneeIDs) {
			errs.Add("assigned_person", domain.FieldInvalidChoice)
		}
	}
	if len(input.BuildingIDs) > 0 {
		buildings, err := s.buildings.GetBuildings(ctx, input.BuildingIDs)
		if err != nil {
			return err
		}
		if len(buildings) != len(input.BuildingIDs) {
			errs.Add("building", domain.FieldInvalidChoice)
		}
	}

	if !errs.Empty() {
		return domain.NewValidationError(errs)
	}
	return nil
}

func (s *TaskService) storeUploads(ctx context.Context, uploads []domain.Upload, at time.Time) ([]domain.NewAttachment, error) {
	stored := make([]domain.NewAttachment, 0, len(uploads))
	for _, upload := range uploads {
		name, err := s.blobs.Save(ctx, upload.Filename, upload.Content)
		if err != nil {
			s.discardBlobs(ctx, stored)
			return nil, fmt.Errorf("store attachment %s: %w", upload.Filename, err)
		}
		stored = append(stored, domain.NewAttachment{File: name, UploadedAt: at})
	}
	return stored, nil
}

func (s *TaskService) discardBlobs(ctx context.Context, attachments []domain.NewAttachment) {
	for _, attachment := range attachments {
		s.deleteBlob(ctx, attachment.File)
	}
}

func (s *TaskService) discardAttachments(ctx context.Context, attachments []domain.Attachment) {
	for _, attachment := range attachments {
		s.deleteBlob(ctx, attachment.File)
	}
}

func (s *TaskService) deleteBlob(ctx context.Context, name string) {
	if err := s.blobs.Delete(context.WithoutCancel(ctx), name); err != nil {
		zap.L().Warn("failed to delete attachment file", zap.String("file", name), zap.Error(err))
	}
}

func normalizeTaskInput(input domain.TaskInput) domain.TaskInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.AssigneeIDs = uniqueIDs(input.AssigneeIDs)
	input.BuildingIDs = uniqueIDs(input.BuildingIDs)
	return input
}

func validateComment(text string) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if strings.TrimSpace(text) == "" {
		errs.Add("comment_text", domain.FieldRequired)
	}
	return errs
}

// ownAttachmentIDs keeps only the requested ids that belong to task.
func ownAttachmentIDs(task domain.Task, requested []uint64) []uint64 {
	own := make(map[uint64]struct{}, len(task.Attachments))
	for _, attachment := range task.Attachments {
		own[attachment.ID] = struct{}{}
	}
	ids := make([]uint64, 0, len(requested))
	for _, id := range uniqueIDs(requested) {
		if _, ok := own[id]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func visibleTo(actor *domain.Actor) *uint64 {
	if actor.IsManager() {
		return nil
	}
	id := actor.UserID()
	return &id
}

func isValidation(err error) bool {
	var validationErr *domain.ValidationError
	return errors.As(err, &validationErr)
}

var _ ports.TaskService = (*TaskService)(nil)
