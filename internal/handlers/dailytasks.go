package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/services"
)

type DailyTaskHandler struct {
	taskSelectionService services.TaskSelectionService
}

func NewDailyTaskHandler(taskSelectionService services.TaskSelectionService) *DailyTaskHandler {
	return &DailyTaskHandler{taskSelectionService: taskSelectionService}
}

// GetDailyTasks returns the stored bundle for the date, generating one on
// first call. An optional date query overrides today (UTC).
func (dh *DailyTaskHandler) GetDailyTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		date = services.Today(time.Now().UTC())
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_date", err)
		return
	}

	result, err := dh.taskSelectionService.GetOrGenerateDailyTasks(c.Request.Context(), userID, date)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "daily_tasks_failed", err)
		return
	}
	RespondOK(c, result)
}
