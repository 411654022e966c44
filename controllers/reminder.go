// controllers/reminder.go
package controllers

import (
	"net/http"
	"time"

	"careloom-backend/config"
	"careloom-backend/models"
	"careloom-backend/services"
	"careloom-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	Service *services.ReminderService
}

// RunReminders is the manual entry point for the daily run. `force=true`
// dispatches regardless of the trigger predicate and skips log writes;
// `dry_run=true` reports what would fire without sending or writing anything.
func (rc *ReminderController) RunReminders(c *gin.Context) {
	opts := services.RunOptions{
		ForceSend: c.Query("force") == "true",
		DryRun:    c.Query("dry_run") == "true",
	}

	summary, err := rc.Service.RunDaily(time.Now(), opts)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Reminder run failed: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetReminderLogs lists the caller's reminder log entries, newest first
func GetReminderLogs(c *gin.Context) {
	profileUUID, ok := profileUUIDFromContext(c)
	if !ok {
		return
	}

	var logs []models.ReminderLog
	if err := config.DB.Where("profile_id = ?", profileUUID).
		Order("sent_at DESC").Limit(100).Find(&logs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve reminder logs")
		return
	}

	c.JSON(http.StatusOK, logs)
}
