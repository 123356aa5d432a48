package dto

type UserItem struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	IsManager bool   `json:"is_manager"`
}

type BuildingItem struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type CommentItem struct {
	ID           uint64    `json:"id"`
	User         *UserItem `json:"user,omitempty"`
	Text         string    `json:"comment_text"`
	CreationDate string    `json:"creation_date"`
}

type AttachmentItem struct {
	ID         uint64 `json:"id"`
	File       string `json:"file"`
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
}

type TaskItem struct {
	ID            uint64           `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	CategoryLabel string           `json:"category_label"`
	Priority      string           `json:"priority"`
	PriorityLabel string           `json:"priority_label"`
	Status        *string          `json:"status_field"`
	StatusLabel   string           `json:"status_label"`
	Deadline      string           `json:"deadline"`
	CreatedAt     string           `json:"created_at"`
	ClosedAt      *string          `json:"closed_at"`
	CreatedBy     *UserItem        `json:"created_by,omitempty"`
	Assignees     []UserItem       `json:"assigned_person"`
	Buildings     []BuildingItem   `json:"building"`
	Comments      []CommentItem    `json:"comments,omitempty"`
	Attachments   []AttachmentItem `json:"attachments,omitempty"`
}

type TaskPage struct {
	Tasks       []TaskItem `json:"tasks"`
	Page        int        `json:"page"`
	NumPages    int        `json:"num_pages"`
	Total       int        `json:"total"`
	HasNext     bool       `json:"has_next"`
	HasPrevious bool       `json:"has_previous"`
	QueryParams string     `json:"query_params"`
}
