package mapper

import (
	"path"
	"time"

	"cmms/internal/adapter/http/dto"
	"cmms/internal/core/domain"
)

const DateTimeLayout = "2006-01-02 15:04"

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Category:      string(task.Category),
		CategoryLabel: task.Category.Label(),
		Priority:      string(task.Priority),
		PriorityLabel: task.Priority.Label(),
		StatusLabel:   task.Status.Label(),
		Deadline:      task.Deadline.UTC().Format(DateTimeLayout),
		CreatedAt:     task.CreatedAt.UTC().Format(time.RFC3339),
		Assignees:     ToUserItems(task.Assignees),
		Buildings:     ToBuildingItems(task.Buildings),
	}

	if task.Status != domain.TaskStatusOpen {
		value := string(task.Status)
		item.Status = &value
	}

	if task.ClosedAt != nil {
		value := task.ClosedAt.UTC().Format(time.RFC3339)
		item.ClosedAt = &value
	}

	if task.CreatedBy != nil {
		user := ToUserItem(*task.CreatedBy)
		item.CreatedBy = &user
	}

	if len(task.Comments) > 0 {
		item.Comments = make([]dto.CommentItem, 0, len(task.Comments))
		for _, comment := range task.Comments {
			item.Comments = append(item.Comments, ToCommentItem(comment))
		}
	}

	if len(task.Attachments) > 0 {
		item.Attachments = make([]dto.AttachmentItem, 0, len(task.Attachments))
		for _, attachment := range task.Attachments {
			item.Attachments = append(item.Attachments, dto.AttachmentItem{
				ID:         attachment.ID,
				File:       attachment.File,
				Filename:   path.Base(attachment.File),
				UploadedAt: attachment.UploadedAt.UTC().Format(time.RFC3339),
			})
		}
	}

	return item
}

func ToTaskPage(page domain.TaskPage) dto.TaskPage {
	return dto.TaskPage{
		Tasks:       ToTaskItems(page.Tasks),
		Page:        page.Page,
		NumPages:    page.NumPages,
		Total:       page.Total,
		HasNext:     page.HasNext(),
		HasPrevious: page.HasPrevious(),
		QueryParams: page.QueryParams,
	}
}

func ToCommentItem(comment domain.TaskComment) dto.CommentItem {
	item := dto.CommentItem{
		ID:           comment.ID,
		Text:         comment.Text,
		CreationDate: comment.CreationDate.UTC().Format(time.RFC3339),
	}
	if comment.User != nil {
		user := ToUserItem(*comment.User)
		item.User = &user
	}
	return item
}
