package dto

// ActionResponse is the programmatic reply of a mutating endpoint.
type ActionResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Task    *TaskItem           `json:"task,omitempty"`
	Comment *CommentItem        `json:"comment,omitempty"`
	// CommentErrors reports a rejected decline comment next to a successful status change.
	CommentErrors map[string][]string `json:"comment_errors,omitempty"`
	Building      *BuildingItem       `json:"building,omitempty"`
}
