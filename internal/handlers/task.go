package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/services"
	"github.com/habitloop/habitloop-backend/internal/types"
)

type TaskHandler struct {
	taskService services.TaskService
}

func NewTaskHandler(taskService services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	Type            string   `json:"type"`
	DurationSeconds int      `json:"duration_seconds"`
	Difficulty      int      `json:"difficulty"`
	Tags            []string `json:"tags"`
}

func (th *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	task := &types.Task{
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Type:            req.Type,
		DurationSeconds: req.DurationSeconds,
		Difficulty:      req.Difficulty,
		Tags:            req.Tags,
	}

	created, err := th.taskService.CreateTask(c.Request.Context(), userID, task)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTask):
			RespondError(c, http.StatusBadRequest, "invalid_task", err)
		case errors.Is(err, services.ErrNotAdmin):
			RespondError(c, http.StatusForbidden, "forbidden", err)
		case errors.Is(err, services.ErrUserNotFound):
			RespondError(c, http.StatusNotFound, "user_not_found", err)
		default:
			RespondError(c, http.StatusInternalServerError, "task_create_failed", err)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"task": created})
}
