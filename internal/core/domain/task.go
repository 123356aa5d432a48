package domain

import "time"

const MaxDescriptionLength = 2048

type TaskCategory string

const (
	TaskCategoryPlanned TaskCategory = "planned"
	TaskCategoryFailure TaskCategory = "failure"
)

var taskCategoryLabels = map[TaskCategory]string{
	TaskCategoryPlanned: "Zadanie planowe",
	TaskCategoryFailure: "Awarie",
}

func (c TaskCategory) Valid() bool {
	_, ok := taskCategoryLabels[c]
	return ok
}

// Label returns the display label, or the raw code for unknown values.
func (c TaskCategory) Label() string {
	if label, ok := taskCategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

var taskPriorityLabels = map[TaskPriority]string{
	TaskPriorityLow:    "Niski",
	TaskPriorityMedium: "Średni",
	TaskPriorityHigh:   "Wysoki",
}

func (p TaskPriority) Valid() bool {
	_, ok := taskPriorityLabels[p]
	return ok
}

func (p TaskPriority) Label() string {
	if label, ok := taskPriorityLabels[p]; ok {
		return label
	}
	return string(p)
}

// TaskStatus is the completion-confirmation state. The zero value means open.
type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = ""
	TaskStatusConfirmed TaskStatus = "confirmed"
	TaskStatusDeclined  TaskStatus = "declined"
	TaskStatusAccepted  TaskStatus = "accepted"

	// TaskStatusNone is the sentinel callers pass to clear the status.
	TaskStatusNone = "none"
)

var taskStatusLabels = map[TaskStatus]string{
	TaskStatusConfirmed: "Wykonano",
	TaskStatusDeclined:  "Wykonanie nie potwierdzone",
	TaskStatusAccepted:  "Wykonanie potwierdzone",
}

func (s TaskStatus) Valid() bool {
	if s == TaskStatusOpen {
		return true
	}
	_, ok := taskStatusLabels[s]
	return ok
}

// Label returns the display label, "-" for an open task.
func (s TaskStatus) Label() string {
	if s == TaskStatusOpen {
		return "-"
	}
	if label, ok := taskStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

type Task struct {
	ID          uint64
	Title       string
	Description string
	Category    TaskCategory
	Priority    TaskPriority
	Deadline    time.Time
	CreatedAt   time.Time
	ClosedAt    *time.Time
	Status      TaskStatus
	CreatedBy   *User
	Assignees   []User
	Buildings   []Building
	Comments    []TaskComment
	Attachments []Attachment
}

func (t Task) IsAssignee(userID uint64) bool {
	for _, assignee := range t.Assignees {
		if assignee.ID == userID {
			return true
		}
	}
	return false
}

func (t Task) AssigneeEmails() []string {
	emails := make([]string, 0, len(t.Assignees))
	for _, assignee := range t.Assignees {
		emails = append(emails, assignee.Email)
	}
	return emails
}

type TaskComment struct {
	ID           uint64
	TaskID       uint64
	User         *User
	Text         string
	CreationDate time.Time
}

type Attachment struct {
	ID         uint64
	TaskID     *uint64
	File       string
	UploadedAt time.Time
}

// Upload is an attachment file received from a caller, not yet stored.
type Upload struct {
	Filename string
	Content  []byte
}

type TaskInput struct {
	Title       string
	Description string
	Category    TaskCategory
	Priority    TaskPriority
	Deadline    *time.Time
	AssigneeIDs []uint64
	BuildingIDs []uint64
	Attachments []Upload
}

// Validate checks the required task fields.
func (in TaskInput) Validate() FieldErrors {
	errs := FieldErrors{}
	if in.Title == "" {
		errs.Add("title", FieldRequired)
	} else if len([]rune(in.Title)) > 255 {
		errs.Add("title", FieldTooLong)
	}
	if in.Deadline == nil {
		errs.Add("deadline", FieldRequired)
	}
	if in.Category == "" {
		errs.Add("category", FieldRequired)
	} else if !in.Category.Valid() {
		errs.Add("category", FieldInvalidChoice)
	}
	if in.Priority == "" {
		errs.Add("priority", FieldRequired)
	} else if !in.Priority.Valid() {
		errs.Add("priority", FieldInvalidChoice)
	}
	if in.Description == "" {
		errs.Add("description", FieldRequired)
	} else if len([]rune(in.Description)) > MaxDescriptionLength {
		errs.Add("description", FieldTooLong)
	}
	if len(in.AssigneeIDs) == 0 {
		errs.Add("assigned_person", FieldRequired)
	}
	if len(in.BuildingIDs) == 0 {
		errs.Add("building", FieldRequired)
	}
	for _, upload := range in.Attachments {
		if upload.Filename == "" {
			errs.Add("attachments", FieldInvalid)
			break
		}
	}
	return errs
}

type TaskUpdateInput struct {
	TaskInput
	RemoveAttachmentIDs []uint64
}

// NewTask is what the repository persists on create.
type NewTask struct {
	Title       string
	Description string
	Category    TaskCategory
	Priority    TaskPriority
	Deadline    time.Time
	CreatedAt   time.Time
	CreatedByID *uint64
	AssigneeIDs []uint64
	BuildingIDs []uint64
	Attachments []NewAttachment
}

type TaskChanges struct {
	Title               string
	Description         string
	Category            TaskCategory
	Priority            TaskPriority
	Deadline            time.Time
	AssigneeIDs         []uint64
	BuildingIDs         []uint64
	AddAttachments      []NewAttachment
	RemoveAttachmentIDs []uint64
}

type NewAttachment struct {
	File       string
	UploadedAt time.Time
}

// StatusChange is applied as one unit together with its optional comment.
type StatusChange struct {
	Status TaskStatus
	// SetClosedAt is nil when closed_at stays as it is.
	SetClosedAt *time.Time
	Comment     *NewComment
}

type NewComment struct {
	UserID    uint64
	Text      string
	CreatedAt time.Time
}

type DeclineResult struct {
	Task    Task
	Comment *TaskComment
	// CommentErrors is set when the decline comment was rejected; the
	// status change is applied regardless.
	CommentErrors FieldErrors
}

type TaskPage struct {
	Tasks       []Task
	Page        int
	NumPages    int
	Total       int
	QueryParams string
}

func (p TaskPage) HasNext() bool { return p.Page < p.NumPages }

func (p TaskPage) HasPrevious() bool { return p.Page > 1 }
