package controllers

import (
	"net/http"

	"careloom-backend/config"
	"careloom-backend/models"
	"careloom-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	Name *string `json:"name"`
	City *string `json:"city"`
}

func GetProfile(c *gin.Context) {
	profileID, exists := c.Get("profileId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Profile not found")
		return
	}

	var profile models.Profile
	if err := config.DB.First(&profile, "id = ?", profileID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Profile not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":             profile.ID,
		"email":          profile.Email,
		"name":           profile.Name,
		"city":           profile.City,
		"nudgeFrequency": profile.NudgeFrequency,
	})
}

func UpdateProfile(c *gin.Context) {
	profileID, exists := c.Get("profileId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Profile not found")
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var profile models.Profile
	if err := config.DB.First(&profile, "id = ?", profileID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Profile not found")
		return
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.City != nil {
		profile.City = *input.City
	}

	if err := config.DB.Save(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateNotificationSettings(c *gin.Context) {
	profileID, exists := c.Get("profileId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Profile not found")
		return
	}

	var input struct {
		NudgeFrequency models.Frequency `json:"nudgeFrequency" binding:"required,oneof=1_day 3_days 1_week 2_weeks 1_month none"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.Profile{}).Where("id = ?", profileID).
		Update("nudge_frequency", input.NudgeFrequency).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
