package controllers

import (
	"net/http"
	"strconv"
	"time"

	"careloom-backend/config"
	"careloom-backend/models"
	"careloom-backend/services"
	"careloom-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalRelationships int                      `json:"totalRelationships"`
	UpcomingEvents     []services.UpcomingEvent `json:"upcomingEvents"`
	RemindersSentYear  int                      `json:"remindersSentThisYear"`
}

// GetDashboardOverview returns the relationship count and the upcoming-events
// projection for the caller. The window defaults to 30 days and can be set
// with the `window` query parameter.
func GetDashboardOverview(c *gin.Context) {
	profileUUID, ok := profileUUIDFromContext(c)
	if !ok {
		return
	}

	windowDays := 30
	if raw := c.Query("window"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid window parameter")
			return
		}
		windowDays = w
	}

	var relationships []models.Relationship
	if err := config.DB.Where("profile_id = ?", profileUUID).Find(&relationships).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve relationships")
		return
	}

	today := time.Now()

	var sentThisYear int64
	yearStart := time.Date(today.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	config.DB.Model(&models.ReminderLog{}).
		Where("profile_id = ? AND sent_at >= ?", profileUUID, yearStart).
		Count(&sentThisYear)

	overview := DashboardOverview{
		TotalRelationships: len(relationships),
		UpcomingEvents:     services.UpcomingEvents(relationships, windowDays, today),
		RemindersSentYear:  int(sentThisYear),
	}

	c.JSON(http.StatusOK, overview)
}
