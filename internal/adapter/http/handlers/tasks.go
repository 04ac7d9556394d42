package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamal845/task-management/internal/adapter/http/dto"
	"github.com/kamal845/task-management/internal/adapter/http/mapper"
	"github.com/kamal845/task-management/internal/adapter/http/middleware"
	"github.com/kamal845/task-management/internal/adapter/http/validation"
	"github.com/kamal845/task-management/internal/core/domain"
	"github.com/kamal845/task-management/internal/core/ports"
	"github.com/kamal845/task-management/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	query := domain.TaskListQuery{
		Status:    domain.TaskStatus(c.Query("status")),
		Priority:  domain.TaskPriority(c.Query("priority")),
		Search:    c.Query("search"),
		SortBy:    domain.TaskSortKey(c.DefaultQuery("sortBy", string(domain.TaskSortCreatedAt))),
		SortOrder: domain.SortOrder(c.DefaultQuery("sortOrder", string(domain.SortDesc))),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}

	page, err := h.taskService.List(c.Request.Context(), user.ID, query)
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Success:    true,
		Count:      len(page.Tasks),
		Total:      page.Total,
		Pagination: mapper.ToPaginationInfo(page.Pagination),
		Data:       dto.TasksPayload{Tasks: mapper.ToTaskItems(page.Tasks)},
	})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), user.ID, taskID)
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailGetTask)
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Success: true,
		Data:    dto.TaskPayload{Task: mapper.ToTaskItem(*task)},
	})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	in, err := validation.BuildCreateTaskInput(req)
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailCreateTask)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), user.ID, in)
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, dto.TaskResponse{
		Success: true,
		Message: "Task created successfully",
		Data:    dto.TaskPayload{Task: mapper.ToTaskItem(*task)},
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	var req dto.UpdateTaskRequest
	var raw map[string]json.RawMessage
	if json.Unmarshal(body, &req) != nil || json.Unmarshal(body, &raw) != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang),
		)
		return
	}

	in, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailUpdateTask)
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), user.ID, taskID, in)
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailUpdateTask)
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Success: true,
		Message: "Task updated successfully",
		Data:    dto.TaskPayload{Task: mapper.ToTaskItem(*task)},
	})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), user.ID, taskID); err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailDeleteTask)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Task deleted successfully",
	})
}

func (h *TaskHandler) TaskStats(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	stats, err := h.taskService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailTaskStats)
		return
	}

	resp := dto.TaskStatsResponse{Success: true}
	resp.Data.Stats = mapper.ToTaskStatsItem(*stats)
	c.JSON(http.StatusOK, resp)
}

func (h *TaskHandler) SearchTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	tasks, total, err := h.taskService.Search(
		c.Request.Context(), user.ID, c.Query("q"), queryInt(c, "page"), queryInt(c, "limit"),
	)
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailSearchTasks)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Success: true,
		Count:   len(tasks),
		Total:   total,
		Data:    dto.TasksPayload{Tasks: mapper.ToTaskItems(tasks)},
	})
}

func (h *TaskHandler) TasksByStatus(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	tasks, total, err := h.taskService.ListByStatus(
		c.Request.Context(), user.ID, domain.TaskStatus(c.Param("status")), queryInt(c, "page"), queryInt(c, "limit"),
	)
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Success: true,
		Count:   len(tasks),
		Total:   total,
		Data:    dto.TasksPayload{Tasks: mapper.ToTaskItems(tasks)},
	})
}

func (h *TaskHandler) OverdueTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	tasks, total, err := h.taskService.ListOverdue(
		c.Request.Context(), user.ID, queryInt(c, "page"), queryInt(c, "limit"),
	)
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailListTasks)
		return
	}

	c.JSON(http.StatusOK, dto.TaskListResponse{
		Success: true,
		Count:   len(tasks),
		Total:   total,
		Data:    dto.TasksPayload{Tasks: mapper.ToTaskItems(tasks)},
	})
}

func (h *TaskHandler) ArchiveTask(c *gin.Context) {
	h.setArchived(c, true)
}

func (h *TaskHandler) UnarchiveTask(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *TaskHandler) setArchived(c *gin.Context, archived bool) {
	lang := middleware.GetLang(c)
	user := middleware.CurrentUser(c)

	taskID, ok := taskIDParam(c, lang)
	if !ok {
		return
	}

	var task *domain.Task
	var err error
	message := "Task archived successfully"
	if archived {
		task, err = h.taskService.Archive(c.Request.Context(), user.ID, taskID)
	} else {
		task, err = h.taskService.Unarchive(c.Request.Context(), user.ID, taskID)
		message = "Task unarchived successfully"
	}
	if err != nil {
		respondTaskError(c, lang, err, apierrors.MsgFailArchiveTask)
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{
		Success: true,
		Message: message,
		Data:    dto.TaskPayload{Task: mapper.ToTaskItem(*task)},
	})
}

// taskIDParam validates the :id path segment before hitting the store.
func taskIDParam(c *gin.Context, lang string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return "", false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}

// respondTaskError maps the service's typed failures onto distinct HTTP
// signals: 400 for validation and malformed identity, 404 for missing, 403
// for present-but-not-owned. Collapsing any of these would change the API.
func respondTaskError(c *gin.Context, lang string, err error, fallbackKey string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateValidationError(http.StatusBadRequest, apierrors.MsgValidationFailed, lang, mapper.ToFieldViolations(verr)),
		)
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang),
		)
	case errors.Is(err, domain.ErrInvalidUserID):
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidUserID, lang),
		)
	default:
		zap.L().Error("task operation failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, fallbackKey, lang),
		)
	}
}
