package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/habitloop/habitloop-backend/internal/gamification"
	"github.com/habitloop/habitloop-backend/internal/services"
)

type CompletionHandler struct {
	completionService services.CompletionService
}

func NewCompletionHandler(completionService services.CompletionService) *CompletionHandler {
	return &CompletionHandler{completionService: completionService}
}

type completeTaskRequest struct {
	TaskID string `json:"task_id" binding:"required"`
	Date   string `json:"date"`
}

func (ch *CompletionHandler) CompleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req completeTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_task_id", err)
		return
	}
	date := req.Date
	if date == "" {
		date = services.Today(time.Now().UTC())
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}

	result, err := ch.completionService.CompleteTask(c.Request.Context(), userID, taskID, date)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAssigned), errors.Is(err, services.ErrTaskNotFound):
			RespondError(c, http.StatusNotFound, "not_assigned", err)
		case errors.Is(err, services.ErrAlreadyCompleted):
			RespondError(c, http.StatusConflict, "already_completed", err)
		case errors.Is(err, gamification.ErrInvalidDifficulty):
			RespondError(c, http.StatusUnprocessableEntity, "invalid_difficulty", err)
		default:
			RespondError(c, http.StatusInternalServerError, "completion_failed", err)
		}
		return
	}
	RespondOK(c, result)
}
