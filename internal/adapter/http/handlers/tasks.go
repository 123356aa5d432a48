package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cmms/internal/adapter/http/dto"
	"cmms/internal/adapter/http/mapper"
	"cmms/internal/adapter/http/middleware"
	"cmms/internal/adapter/http/validation"
	"cmms/internal/app/service"
	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
	"cmms/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	query := c.Request.URL.Query()
	page, err := h.taskService.ListTasks(
		c.Request.Context(),
		middleware.GetActor(c),
		service.ParseTaskFilter(query),
		service.ParsePage(query),
	)
	if err != nil {
		respondError(c, err, "failed to list tasks")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskPage(page))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseID(c, "id", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), middleware.GetActor(c), taskID)
	if err != nil {
		respondError(c, err, "failed to get task")
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	actor := middleware.GetActor(c)
	if err := service.Authorize(actor, service.OpCreateTask, nil); err != nil {
		respondError(c, err, "failed to create task")
		return
	}

	var form dto.TaskForm
	fieldErrs, err := validation.BindForm(c, &form)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	if !fieldErrs.Empty() {
		respondFieldErrors(c, fieldErrs)
		return
	}
	input, err := validation.BuildTaskInput(form)
	if err != nil {
		respondInvalidPayload(c)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, err, "failed to create task")
		return
	}

	item := mapper.ToTaskItem(task)
	respondSuccess(c, http.StatusCreated, tasksPath, dto.ActionResponse{
		Message: localize(c, apierrors.MsgTaskCreated, nil),
		Task:    &item,
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseID(c, "id", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	actor := middleware.GetActor(c)
	if err := service.Authorize(actor, service.OpUpdateTask, nil); err != nil {
		respondError(c, err, "failed to update task")
		return
	}

	var form dto.TaskUpdateForm
	fieldErrs, err := validation.BindForm(c, &form)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	input, updateErrs, err := validation.BuildTaskUpdateInput(form)
	if err != nil {
		respondInvalidPayload(c)
		return
	}
	fieldErrs.Merge(updateErrs)
	if !fieldErrs.Empty() {
		respondFieldErrors(c, fieldErrs)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), actor, taskID, input)
	if err != nil {
		respondError(c, err, "failed to update task")
		return
	}

	item := mapper.ToTaskItem(task)
	respondSuccess(c, http.StatusOK, tasksPath, dto.ActionResponse{
		Message: localize(c, apierrors.MsgTaskUpdated, nil),
		Task:    &item,
	})
}

// SetStatusEmployee handles an assignee marking the task done or reverting it.
func (h *TaskHandler) SetStatusEmployee(c *gin.Context) {
	taskID, ok := parseID(c, "id", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}
	status := c.Param("status")

	task, err := h.taskService.SetStatusEmployee(c.Request.Context(), middleware.GetActor(c), taskID, status)
	if err != nil {
		respondError(c, err, "failed to set task status")
		return
	}

	msgKey := apierrors.MsgTaskMarkedDone
	if status == domain.TaskStatusNone {
		msgKey = apierrors.MsgTaskReverted
	}
	item := mapper.ToTaskItem(task)
	respondSuccess(c, http.StatusOK, tasksPath, dto.ActionResponse{
		Message: localize(c, msgKey, map[string]any{"Title": task.Title}),
		Task:    &item,
	})
}

func (h *TaskHandler) SetStatusManagerGet(c *gin.Context) {
	taskID, ok := parseID(c, "id", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	task, err := h.taskService.SetStatusManagerGet(c.Request.Context(), middleware.GetActor(c), taskID, c.Param("status"))
	if err != nil {
		respondError(c, err, "failed to confirm task")
		return
	}

	item := mapper.ToTaskItem(task)
	respondSuccess(c, http.StatusOK, tasksPath, dto.ActionResponse{
		Message: localize(c, apierrors.MsgTaskConfirmed, map[string]any{"Title": task.Title}),
		Task:    &item,
	})
}

// DeclineTask always reports the status change; a rejected comment comes
// back in comment_errors.
func (h *TaskHandler) DeclineTask(c *gin.Context) {
	taskID, ok := parseID(c, "id", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	result, err := h.taskService.SetStatusManagerDecline(
		c.Request.Context(),
		middleware.GetActor(c),
		taskID,
		c.PostForm(validation.FieldCommentText),
	)
	if err != nil {
		respondError(c, err, "failed to decline task")
		return
	}

	item := mapper.ToTaskItem(result.Task)
	payload := dto.ActionResponse{
		Message: localize(c, apierrors.MsgTaskDeclined, map[string]any{"Title": result.Task.Title}),
		Task:    &item,
	}
	if result.Comment != nil {
		comment := mapper.ToCommentItem(*result.Comment)
		payload.Comment = &comment
	}
	if !result.CommentErrors.Empty() {
		payload.CommentErrors = apierrors.TranslateFields(result.CommentErrors, middleware.GetLang(c))
	}
	respondSuccess(c, http.StatusOK, tasksPath, payload)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseID(c, "id", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), middleware.GetActor(c), taskID); err != nil {
		respondError(c, err, "failed to delete task")
		return
	}

	respondSuccess(c, http.StatusOK, tasksPath, dto.ActionResponse{
		Message: localize(c, apierrors.MsgTaskDeleted, nil),
	})
}

func (h *TaskHandler) AddComment(c *gin.Context) {
	taskID, ok := parseID(c, "id", apierrors.MsgInvalidTaskID)
	if !ok {
		return
	}

	comment, err := h.taskService.AddComment(
		c.Request.Context(),
		middleware.GetActor(c),
		taskID,
		c.PostForm(validation.FieldCommentText),
	)
	if err != nil {
		respondError(c, err, "failed to add comment")
		return
	}

	item := mapper.ToCommentItem(comment)
	respondSuccess(c, http.StatusCreated, tasksPath, dto.ActionResponse{
		Message: localize(c, apierrors.MsgCommentCreated, nil),
		Comment: &item,
	})
}

func respondInvalidPayload(c *gin.Context) {
	lang := middleware.GetLang(c)
	c.JSON(http.StatusBadRequest, apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidPayload, lang))
}
