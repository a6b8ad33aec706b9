package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/habitloop/habitloop-backend/internal/services"
)

type BadgeHandler struct {
	badgeService services.BadgeService
}

func NewBadgeHandler(badgeService services.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// GetBadges returns the full catalog annotated with earned state and
// progress. With progress=false only the earned awards are returned.
func (bh *BadgeHandler) GetBadges(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if c.Query("progress") == "false" {
		earned, err := bh.badgeService.ListEarned(c.Request.Context(), userID)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "badges_failed", err)
			return
		}
		RespondOK(c, gin.H{"badges": earned})
		return
	}

	progress, err := bh.badgeService.Progress(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "badges_failed", err)
		return
	}
	RespondOK(c, gin.H{"badges": progress})
}
