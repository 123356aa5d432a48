package domain

import "time"

type AuditAction string

const (
	AuditPasswordResetRequested  AuditAction = "password_reset_requested"
	AuditPasswordChangeRequested AuditAction = "password_change_requested"
	AuditUserFirstLogin          AuditAction = "user_first_login"
	AuditUserAdded               AuditAction = "user_added"
	AuditTaskCreated             AuditAction = "task_created"
	AuditTaskCreationFailed      AuditAction = "task_creation_failed"
	AuditTaskUpdated             AuditAction = "task_updated"
	AuditTaskUpdateFailed        AuditAction = "task_update_failed"
	AuditTaskDeleted             AuditAction = "task_deleted"
	AuditTaskDeleteFailed        AuditAction = "task_delete_failed"
	AuditBuildingCreated         AuditAction = "building_created"
	AuditBuildingCreationFailed  AuditAction = "building_creation_failed"
	AuditBuildingUpdated         AuditAction = "building_updated"
	AuditBuildingUpdateFailed    AuditAction = "building_update_failed"
	AuditBuildingDeleted         AuditAction = "building_deleted"
	AuditBuildingDeleteFailed    AuditAction = "building_delete_failed"
	AuditTaskCommentCreated      AuditAction = "task_comment_created"
	AuditEmailSent               AuditAction = "email_sent"
	AuditEmailFailed             AuditAction = "email_failed"
)

// AuditEntry is one immutable record. Email is captured by value.
type AuditEntry struct {
	ID          uint64
	Action      AuditAction
	IP          *string
	Email       *string
	Date        time.Time
	Description string
}

type AuditFilter struct {
	Action AuditAction
	Page   int
}

type AuditPage struct {
	Entries  []AuditEntry
	Page     int
	NumPages int
	Total    int
}
