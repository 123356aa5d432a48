package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

const taskColumns = `
  t.id, t.title, t.description, t.category, t.priority, t.deadline,
  t.created_at, t.closed_at, t.status_field,
  cu.id AS creator_id, cu.email AS creator_email,
  cu.first_name AS creator_first_name, cu.last_name AS creator_last_name,
  cu.is_manager AS creator_is_manager`

const (
	taskFromClause = `
FROM tasks t
LEFT JOIN users cu ON cu.id = t.created_by`

	getTaskQuery    = `SELECT ` + taskColumns + taskFromClause + ` WHERE t.id = ?`
	countTasksQuery = `SELECT COUNT(*) FROM tasks t`
	taskExistsQuery = `SELECT COUNT(*) FROM tasks WHERE id = ?`
	deleteTaskQuery = `DELETE FROM tasks WHERE id = ?`

	insertTaskQuery = `
INSERT INTO tasks (title, description, category, priority, deadline, created_at, created_by)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	updateTaskQuery = `
UPDATE tasks
SET title = ?, description = ?, category = ?, priority = ?, deadline = ?
WHERE id = ?`

	taskAssigneesQuery = `
SELECT ta.task_id, ` + userColumns + `
FROM task_assignees ta
JOIN users u ON u.id = ta.user_id
WHERE ta.task_id IN (?)
ORDER BY u.last_name, u.first_name, u.id`

	taskBuildingsQuery = `
SELECT tb.task_id, b.id, b.name, b.address
FROM task_buildings tb
JOIN buildings b ON b.id = tb.building_id
WHERE tb.task_id IN (?)
ORDER BY b.name, b.id`

	commentSelect = `
SELECT c.id, c.task_id, c.comment_text, c.creation_date,
  u.id AS user_id, u.email AS user_email, u.first_name AS user_first_name,
  u.last_name AS user_last_name, u.is_manager AS user_is_manager
FROM task_comments c
LEFT JOIN users u ON u.id = c.user_id`

	taskCommentsQuery = commentSelect + ` WHERE c.task_id = ? ORDER BY c.creation_date DESC, c.id DESC`
	taskCommentQuery  = commentSelect + ` WHERE c.id = ?`

	taskAttachmentsQuery      = `SELECT a.id, a.task_id, a.file, a.uploaded_at FROM attachments a WHERE a.task_id = ? ORDER BY a.id`
	removableAttachmentsQuery = `SELECT a.id, a.task_id, a.file, a.uploaded_at FROM attachments a WHERE a.task_id = ? AND a.id IN (?)`

	linkAssigneeQuery      = `INSERT INTO task_assignees (task_id, user_id) VALUES (?, ?)`
	linkBuildingQuery      = `INSERT INTO task_buildings (task_id, building_id) VALUES (?, ?)`
	clearAssigneesQuery    = `DELETE FROM task_assignees WHERE task_id = ?`
	clearBuildingsQuery    = `DELETE FROM task_buildings WHERE task_id = ?`
	insertAttachmentQuery  = `INSERT INTO attachments (task_id, file, uploaded_at) VALUES (?, ?, ?)`
	deleteAttachmentsQuery = `DELETE FROM attachments WHERE task_id = ? AND id IN (?)`
	insertCommentQuery     = `INSERT INTO task_comments (task_id, user_id, comment_text, creation_date) VALUES (?, ?, ?, ?)`
)

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID               uint64         `db:"id"`
	Title            string         `db:"title"`
	Description      string         `db:"description"`
	Category         string         `db:"category"`
	Priority         string         `db:"priority"`
	Deadline         time.Time      `db:"deadline"`
	CreatedAt        time.Time      `db:"created_at"`
	ClosedAt         sql.NullTime   `db:"closed_at"`
	Status           sql.NullString `db:"status_field"`
	CreatorID        sql.NullInt64  `db:"creator_id"`
	CreatorEmail     sql.NullString `db:"creator_email"`
	CreatorFirstName sql.NullString `db:"creator_first_name"`
	CreatorLastName  sql.NullString `db:"creator_last_name"`
	CreatorIsManager sql.NullBool   `db:"creator_is_manager"`
}

type taskUserRow struct {
	TaskID uint64 `db:"task_id"`
	userRow
}

type taskBuildingRow struct {
	TaskID uint64 `db:"task_id"`
	buildingRow
}

type commentRow struct {
	ID            uint64         `db:"id"`
	TaskID        uint64         `db:"task_id"`
	Text          string         `db:"comment_text"`
	CreationDate  time.Time      `db:"creation_date"`
	UserID        sql.NullInt64  `db:"user_id"`
	UserEmail     sql.NullString `db:"user_email"`
	UserFirstName sql.NullString `db:"user_first_name"`
	UserLastName  sql.NullString `db:"user_last_name"`
	UserIsManager sql.NullBool   `db:"user_is_manager"`
}

type attachmentRow struct {
	ID         uint64        `db:"id"`
	TaskID     sql.NullInt64 `db:"task_id"`
	File       string        `db:"file"`
	UploadedAt time.Time     `db:"uploaded_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateTask stores the task with its assignees, buildings and attachments
// in one transaction.
func (r *TaskRepository) CreateTask(ctx context.Context, task domain.NewTask) (uint64, error) {
	var id uint64
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var createdBy sql.NullInt64
		if task.CreatedByID != nil {
			createdBy = sql.NullInt64{Int64: int64(*task.CreatedByID), Valid: true}
		}

		result, err := tx.ExecContext(ctx, tx.Rebind(insertTaskQuery),
			task.Title,
			task.Description,
			string(task.Category),
			string(task.Priority),
			task.Deadline.UTC(),
			task.CreatedAt.UTC(),
			createdBy,
		)
		if err != nil {
			return err
		}
		lastID, err := result.LastInsertId()
		if err != nil {
			return err
		}
		id = uint64(lastID)

		if err := insertLinks(ctx, tx, linkAssigneeQuery, id, task.AssigneeIDs); err != nil {
			return err
		}
		if err := insertLinks(ctx, tx, linkBuildingQuery, id, task.BuildingIDs); err != nil {
			return err
		}
		return insertAttachments(ctx, tx, id, task.Attachments)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetTask loads a task with its assignees, buildings, comments (newest
// first) and attachments.
func (r *TaskRepository) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(getTaskQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	tasks := []domain.Task{mapTaskRowToDomainTask(row)}
	if err := r.loadRelations(ctx, tasks); err != nil {
		return domain.Task{}, err
	}
	task := tasks[0]

	var comments []commentRow
	if err := r.db.SelectContext(ctx, &comments, r.db.Rebind(taskCommentsQuery), id); err != nil {
		return domain.Task{}, err
	}
	task.Comments = make([]domain.TaskComment, 0, len(comments))
	for _, comment := range comments {
		task.Comments = append(task.Comments, mapCommentRowToDomainComment(comment))
	}

	var attachments []attachmentRow
	if err := r.db.SelectContext(ctx, &attachments, r.db.Rebind(taskAttachmentsQuery), id); err != nil {
		return domain.Task{}, err
	}
	task.Attachments = mapAttachmentRows(attachments)

	return task, nil
}

// ListTasks returns one page of matching tasks, newest first, with the
// total number of matches.
func (r *TaskRepository) ListTasks(ctx context.Context, query domain.TaskQuery) ([]domain.Task, int, error) {
	where := buildTaskWhere(query.Filter, query.VisibleTo)

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(countTasksQuery+where.String()), where.args...); err != nil {
		return nil, 0, err
	}

	tasks, err := r.selectTasks(ctx, where, query.Limit, query.Offset)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// UpdateTask applies the changes in one transaction and returns the
// attachments it removed so their files can be dropped.
func (r *TaskRepository) UpdateTask(ctx context.Context, id uint64, changes domain.TaskChanges) ([]domain.Attachment, error) {
	var removed []domain.Attachment
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := ensureTaskExists(ctx, tx, id); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(updateTaskQuery),
			changes.Title,
			changes.Description,
			string(changes.Category),
			string(changes.Priority),
			changes.Deadline.UTC(),
			id,
		); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(clearAssigneesQuery), id); err != nil {
			return err
		}
		if err := insertLinks(ctx, tx, linkAssigneeQuery, id, changes.AssigneeIDs); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(clearBuildingsQuery), id); err != nil {
			return err
		}
		if err := insertLinks(ctx, tx, linkBuildingQuery, id, changes.BuildingIDs); err != nil {
			return err
		}

		var err error
		removed, err = removeAttachments(ctx, tx, id, changes.RemoveAttachmentIDs)
		if err != nil {
			return err
		}
		return insertAttachments(ctx, tx, id, changes.AddAttachments)
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// UpdateStatus sets the status, optionally closed_at, and stores the
// optional comment in the same transaction.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id uint64, change domain.StatusChange) (*domain.TaskComment, error) {
	var comment *domain.TaskComment
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := ensureTaskExists(ctx, tx, id); err != nil {
			return err
		}

		query := `UPDATE tasks SET status_field = ?`
		args := []any{statusValue(change.Status)}
		if change.SetClosedAt != nil {
			query += `, closed_at = ?`
			args = append(args, change.SetClosedAt.UTC())
		}
		query += ` WHERE id = ?`
		args = append(args, id)

		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return err
		}

		if change.Comment == nil {
			return nil
		}
		created, err := insertComment(ctx, tx, id, change.Comment.UserID, change.Comment.Text, change.Comment.CreatedAt)
		if err != nil {
			return err
		}
		comment = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteTask removes the task; comments, attachments and links cascade.
func (r *TaskRepository) DeleteTask(ctx context.Context, id uint64) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(deleteTaskQuery), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) CreateComment(ctx context.Context, taskID, userID uint64, text string, at time.Time) (domain.TaskComment, error) {
	var comment domain.TaskComment
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := ensureTaskExists(ctx, tx, taskID); err != nil {
			return err
		}
		var err error
		comment, err = insertComment(ctx, tx, taskID, userID, text, at)
		return err
	})
	return comment, err
}

func (r *TaskRepository) selectTasks(ctx context.Context, where *whereClause, limit, offset int) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + taskFromClause + where.String() +
		` ORDER BY t.created_at DESC, t.id DESC LIMIT ? OFFSET ?`
	args := append(append([]any{}, where.args...), limit, offset)

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}
	if err := r.loadRelations(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// loadRelations fills assignees and buildings for all tasks in two queries.
func (r *TaskRepository) loadRelations(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(tasks))
	index := make(map[uint64]int, len(tasks))
	for i, task := range tasks {
		ids = append(ids, task.ID)
		index[task.ID] = i
		tasks[i].Assignees = []domain.User{}
		tasks[i].Buildings = []domain.Building{}
	}

	query, args, err := sqlx.In(taskAssigneesQuery, ids)
	if err != nil {
		return err
	}
	var assignees []taskUserRow
	if err := r.db.SelectContext(ctx, &assignees, r.db.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range assignees {
		i := index[row.TaskID]
		tasks[i].Assignees = append(tasks[i].Assignees, mapUserRowToDomainUser(row.userRow))
	}

	query, args, err = sqlx.In(taskBuildingsQuery, ids)
	if err != nil {
		return err
	}
	var buildings []taskBuildingRow
	if err := r.db.SelectContext(ctx, &buildings, r.db.Rebind(query), args...); err != nil {
		return err
	}
	for _, row := range buildings {
		i := index[row.TaskID]
		tasks[i].Buildings = append(tasks[i].Buildings, mapBuildingRowToDomainBuilding(row.buildingRow))
	}

	return nil
}

func ensureTaskExists(ctx context.Context, tx *sqlx.Tx, id uint64) error {
	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(taskExistsQuery), id); err != nil {
		return err
	}
	if count == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func insertLinks(ctx context.Context, tx *sqlx.Tx, query string, taskID uint64, ids []uint64) error {
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), taskID, id); err != nil {
			return err
		}
	}
	return nil
}

func insertAttachments(ctx context.Context, tx *sqlx.Tx, taskID uint64, attachments []domain.NewAttachment) error {
	for _, attachment := range attachments {
		if _, err := tx.ExecContext(ctx, tx.Rebind(insertAttachmentQuery),
			taskID, attachment.File, attachment.UploadedAt.UTC()); err != nil {
			return err
		}
	}
	return nil
}

// removeAttachments deletes the listed attachments of taskID. Ids that
// belong to other tasks are left alone.
func removeAttachments(ctx context.Context, tx *sqlx.Tx, taskID uint64, ids []uint64) ([]domain.Attachment, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(removableAttachmentsQuery, taskID, ids)
	if err != nil {
		return nil, err
	}
	var rows []attachmentRow
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return nil, err
	}

	query, args, err = sqlx.In(deleteAttachmentsQuery, taskID, ids)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
		return nil, err
	}

	return mapAttachmentRows(rows), nil
}

func insertComment(ctx context.Context, tx *sqlx.Tx, taskID, userID uint64, text string, at time.Time) (domain.TaskComment, error) {
	var user sql.NullInt64
	if userID != 0 {
		user = sql.NullInt64{Int64: int64(userID), Valid: true}
	}

	result, err := tx.ExecContext(ctx, tx.Rebind(insertCommentQuery), taskID, user, text, at.UTC())
	if err != nil {
		return domain.TaskComment{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return domain.TaskComment{}, err
	}

	var row commentRow
	if err := tx.GetContext(ctx, &row, tx.Rebind(taskCommentQuery), id); err != nil {
		return domain.TaskComment{}, err
	}
	return mapCommentRowToDomainComment(row), nil
}

func statusValue(status domain.TaskStatus) sql.NullString {
	if status == domain.TaskStatusOpen {
		return sql.NullString{}
	}
	return sql.NullString{String: string(status), Valid: true}
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Category:    domain.TaskCategory(row.Category),
		Priority:    domain.TaskPriority(row.Priority),
		Deadline:    row.Deadline,
		CreatedAt:   row.CreatedAt,
	}

	if row.ClosedAt.Valid {
		value := row.ClosedAt.Time
		task.ClosedAt = &value
	}

	if row.Status.Valid {
		task.Status = domain.TaskStatus(row.Status.String)
	}

	if row.CreatorID.Valid {
		task.CreatedBy = &domain.User{
			ID:        uint64(row.CreatorID.Int64),
			Email:     row.CreatorEmail.String,
			FirstName: row.CreatorFirstName.String,
			LastName:  row.CreatorLastName.String,
			IsManager: row.CreatorIsManager.Bool,
		}
	}

	return task
}

func mapCommentRowToDomainComment(row commentRow) domain.TaskComment {
	comment := domain.TaskComment{
		ID:           row.ID,
		TaskID:       row.TaskID,
		Text:         row.Text,
		CreationDate: row.CreationDate,
	}
	if row.UserID.Valid {
		comment.User = &domain.User{
			ID:        uint64(row.UserID.Int64),
			Email:     row.UserEmail.String,
			FirstName: row.UserFirstName.String,
			LastName:  row.UserLastName.String,
			IsManager: row.UserIsManager.Bool,
		}
	}
	return comment
}

func mapAttachmentRows(rows []attachmentRow) []domain.Attachment {
	attachments := make([]domain.Attachment, 0, len(rows))
	for _, row := range rows {
		attachment := domain.Attachment{ID: row.ID, File: row.File, UploadedAt: row.UploadedAt}
		if row.TaskID.Valid {
			taskID := uint64(row.TaskID.Int64)
			attachment.TaskID = &taskID
		}
		attachments = append(attachments, attachment)
	}
	return attachments
}
