package apierrors

// Message keys of pkg/translator/translation.
const (
	MsgGenericError     = "genericError"
	MsgInvalidPayload   = "invalidPayload"
	MsgFormErrors       = "formErrors"
	MsgInvalidTaskID    = "invalidTaskID"
	MsgInvalidID        = "invalidID"
	MsgTaskNotFound     = "taskNotFound"
	MsgBuildingNotFound = "buildingNotFound"
	MsgUserNotFound     = "userNotFound"
	MsgPageNotFound     = "pageNotFound"
	MsgForbidden        = "forbidden"
	MsgUnauthorized     = "unauthorized"
	MsgTaskClosed       = "taskClosed"
	MsgInvalidStatus    = "invalidStatus"

	MsgTaskCreated     = "taskCreated"
	MsgTaskUpdated     = "taskUpdated"
	MsgTaskDeleted     = "taskDeleted"
	MsgTaskMarkedDone  = "taskMarkedDone"
	MsgTaskReverted    = "taskReverted"
	MsgTaskConfirmed   = "taskConfirmed"
	MsgTaskDeclined    = "taskDeclined"
	MsgCommentCreated  = "commentCreated"
	MsgBuildingCreated = "buildingCreated"
	MsgBuildingUpdated = "buildingUpdated"
	MsgBuildingDeleted = "buildingDeleted"
)

// FieldMsgPrefix prefixes domain field error codes, e.g. field_required.
const FieldMsgPrefix = "field_"
