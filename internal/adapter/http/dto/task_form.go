package dto

import "mime/multipart"

// TaskForm is the create form. Deadline accepts the layouts known to the
// "deadline" validation.
type TaskForm struct {
	Title       string                  `form:"title" binding:"required,max=255"`
	Description string                  `form:"description" binding:"required,max=2048"`
	Category    string                  `form:"category" binding:"required,oneof=planned failure"`
	Priority    string                  `form:"priority" binding:"required,oneof=low medium high"`
	Deadline    string                  `form:"deadline" binding:"required,deadline"`
	AssigneeIDs []uint64                `form:"assigned_person" binding:"required,min=1,dive,gt=0"`
	BuildingIDs []uint64                `form:"building" binding:"required,min=1,dive,gt=0"`
	Attachments []*multipart.FileHeader `form:"attachments"`
}

// TaskUpdateForm adds the attachments to remove, given as "1,2" or as
// repeated values.
type TaskUpdateForm struct {
	TaskForm
	DeleteAttachments []string `form:"delete_attachments"`
}
