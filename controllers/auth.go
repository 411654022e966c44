package controllers

import (
	"errors"
	"net/http"
	"time"

	"careloom-backend/config"
	"careloom-backend/models"
	"careloom-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email          string           `json:"email" binding:"required,email"`
	Name           string           `json:"name" binding:"required"`
	Password       string           `json:"password" binding:"required,min=8"`
	City           string           `json:"city"`
	NudgeFrequency models.Frequency `json:"nudgeFrequency" binding:"omitempty,oneof=1_day 3_days 1_week 2_weeks 1_month none"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// controllers/auth.go
func Register(c *gin.Context) {
	var input RegisterInput

	// Bind and validate input
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Check if email already exists
	var existingProfile models.Profile
	result := config.DB.Where("email = ?", input.Email).First(&existingProfile)

	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newProfile := models.Profile{
		Email:          input.Email,
		Name:           input.Name,
		Password:       input.Password, // Will be hashed in BeforeCreate hook
		City:           input.City,
		NudgeFrequency: input.NudgeFrequency,
		IsActive:       true,
	}
	if newProfile.NudgeFrequency == "" {
		newProfile.NudgeFrequency = models.FrequencyOneWeek
	}

	if err := config.DB.Create(&newProfile).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	token, err := utils.GenerateToken(newProfile.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"profile": gin.H{
			"id":    newProfile.ID,
			"email": newProfile.Email,
			"name":  newProfile.Name,
		},
	})
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var profile models.Profile
	if err := config.DB.Where("email = ?", input.Email).First(&profile).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(input.Password, profile.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	config.DB.Model(&profile).Update("last_login", &now)

	token, err := utils.GenerateToken(profile.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"profile": gin.H{
			"id":    profile.ID,
			"email": profile.Email,
			"name":  profile.Name,
		},
	})
}

func Me(c *gin.Context) {
	profileID, exists := c.Get("profileId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Profile not found in context")
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
