package controllers

import (
	"errors"
	"net/http"

	"careloom-backend/config"
	"careloom-backend/models"
	"careloom-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateRelationshipInput defines the expected JSON structure for creating a relationship
type CreateRelationshipInput struct {
	Name                             string            `json:"name" binding:"required"`
	RelationshipType                 string            `json:"relationshipType" binding:"required,oneof=partner spouse friend family colleague other"`
	Email                            *string           `json:"email" binding:"omitempty,email"`
	Birthday                         *string           `json:"birthday"`
	Anniversary                      *string           `json:"anniversary"`
	BirthdayNotificationFrequency    *models.Frequency `json:"birthdayNotificationFrequency" binding:"omitempty,oneof=1_day 3_days 1_week 2_weeks 1_month none"`
	AnniversaryNotificationFrequency *models.Frequency `json:"anniversaryNotificationFrequency" binding:"omitempty,oneof=1_day 3_days 1_week 2_weeks 1_month none"`
	DateIdeasFrequency               *string           `json:"dateIdeasFrequency" binding:"omitempty,oneof=weekly biweekly monthly none"`
	Notes                            string            `json:"notes"`
}

// UpdateRelationshipInput defines the expected JSON structure for updating a relationship
type UpdateRelationshipInput struct {
	Name                             *string           `json:"name"`
	RelationshipType                 *string           `json:"relationshipType" binding:"omitempty,oneof=partner spouse friend family colleague other"`
	Email                            *string           `json:"email" binding:"omitempty,email"`
	Birthday                         *string           `json:"birthday"`
	Anniversary                      *string           `json:"anniversary"`
	BirthdayNotificationFrequency    *models.Frequency `json:"birthdayNotificationFrequency" binding:"omitempty,oneof=1_day 3_days 1_week 2_weeks 1_month none"`
	AnniversaryNotificationFrequency *models.Frequency `json:"anniversaryNotificationFrequency" binding:"omitempty,oneof=1_day 3_days 1_week 2_weeks 1_month none"`
	DateIdeasFrequency               *string           `json:"dateIdeasFrequency" binding:"omitempty,oneof=weekly biweekly monthly none"`
	Notes                            *string           `json:"notes"`
}

func profileUUIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	profileID, exists := c.Get("profileId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Profile ID not found in context")
		return uuid.Nil, false
	}

	profileUUID, err := uuid.Parse(profileID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid profile ID format")
		return uuid.Nil, false
	}
	return profileUUID, true
}

// validateStoredDate rejects date strings the reminder core could not parse.
func validateStoredDate(c *gin.Context, field string, value *string) bool {
	if value == nil || *value == "" {
		return true
	}
	if _, err := utils.ParseCalendarDate(*value); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+field+": expected YYYY-MM-DD")
		return false
	}
	return true
}

// CreateRelationship creates a new relationship for the profile
func CreateRelationship(c *gin.Context) {
	profileUUID, ok := profileUUIDFromContext(c)
	if !ok {
		return
	}

	var input CreateRelationshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !validateStoredDate(c, "birthday", input.Birthday) || !validateStoredDate(c, "anniversary", input.Anniversary) {
		return
	}

	// New relationships inherit the profile's default nudge frequency
	var profile models.Profile
	if err := config.DB.First(&profile, "id = ?", profileUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	relationship := models.Relationship{
		ID:                               uuid.New(),
		ProfileID:                        profileUUID,
		Name:                             input.Name,
		RelationshipType:                 input.RelationshipType,
		Birthday:                         input.Birthday,
		Anniversary:                      input.Anniversary,
		BirthdayNotificationFrequency:    profile.NudgeFrequency,
		AnniversaryNotificationFrequency: profile.NudgeFrequency,
		DateIdeasFrequency:               models.DateIdeasNone,
		Notes:                            input.Notes,
	}

	if input.Email != nil {
		relationship.Email = *input.Email
	}
	if input.BirthdayNotificationFrequency != nil {
		relationship.BirthdayNotificationFrequency = *input.BirthdayNotificationFrequency
	}
	if input.AnniversaryNotificationFrequency != nil {
		relationship.AnniversaryNotificationFrequency = *input.AnniversaryNotificationFrequency
	}
	if input.DateIdeasFrequency != nil {
		relationship.DateIdeasFrequency = *input.DateIdeasFrequency
	}

	if err := config.DB.Create(&relationship).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create relationship")
		return
	}

	c.JSON(http.StatusCreated, relationship)
}

// GetRelationships retrieves all relationships for the profile
func GetRelationships(c *gin.Context) {
	profileUUID, ok := profileUUIDFromContext(c)
	if !ok {
		return
	}

	var relationships []models.Relationship
	if err := config.DB.Where("profile_id = ?", profileUUID).Find(&relationships).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve relationships")
		return
	}

	c.JSON(http.StatusOK, relationships)
}

// GetRelationship retrieves a specific relationship by ID
func GetRelationship(c *gin.Context) {
	profileUUID, ok := profileUUIDFromContext(c)
	if !ok {
		return
	}

	relationshipUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid relationship ID format")
		return
	}

	var relationship models.Relationship
	if err := config.DB.Where("profile_id = ? AND id = ?", profileUUID, relationshipUUID).
		First(&relationship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Relationship not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, relationship)
}

// UpdateRelationship updates an existing relationship
func UpdateRelationship(c *gin.Context) {
	profileUUID, ok := profileUUIDFromContext(c)
	if !ok {
		return
	}

	relationshipUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid relationship ID format")
		return
	}

	var input UpdateRelationshipInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !validateStoredDate(c, "birthday", input.Birthday) || !validateStoredDate(c, "anniversary", input.Anniversary) {
		return
	}

	var relationship models.Relationship
	if err := config.DB.Where("profile_id = ? AND id = ?", profileUUID, relationshipUUID).
		First(&relationship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Relationship not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		relationship.Name = *input.Name
	}
	if input.RelationshipType != nil {
		relationship.RelationshipType = *input.RelationshipType
	}
	if input.Email != nil {
		relationship.Email = *input.Email
	}
	if input.Birthday != nil {
		relationship.Birthday = input.Birthday
	}
	if input.Anniversary != nil {
		relationship.Anniversary = input.Anniversary
	}
	if input.BirthdayNotificationFrequency != nil {
		relationship.BirthdayNotificationFrequency = *input.BirthdayNotificationFrequency
	}
	if input.AnniversaryNotificationFrequency != nil {
		relationship.AnniversaryNotificationFrequency = *input.AnniversaryNotificationFrequency
	}
	if input.DateIdeasFrequency != nil {
		relationship.DateIdeasFrequency = *input.DateIdeasFrequency
	}
	if input.Notes != nil {
		relationship.Notes = *input.Notes
	}

	if err := config.DB.Save(&relationship).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update relationship")
		return
	}

	c.JSON(http.StatusOK, relationship)
}

// DeleteRelationship deletes a relationship
func DeleteRelationship(c *gin.Context) {
	profileUUID, ok := profileUUIDFromContext(c)
	if !ok {
		return
	}

	relationshipUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid relationship ID format")
		return
	}

	result := config.DB.Where("profile_id = ? AND id = ?", profileUUID, relationshipUUID).
		Delete(&models.Relationship{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete relationship")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Relationship not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Relationship deleted successfully"})
}
