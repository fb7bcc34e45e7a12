package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"medtrack/internal/auth"
	"medtrack/internal/database"
	"medtrack/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateProfile handles partial updates of the authenticated user's profile
func UpdateProfile(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	db := database.GetDB()
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve user", err)
		return
	}

	var req models.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.DateOfBirth != nil {
		updates["date_of_birth"] = *req.DateOfBirth
	}
	if req.Conditions != nil {
		conditionsJSON, err := json.Marshal(req.Conditions)
		if err != nil {
			log.Printf("Warning: Failed to marshal conditions: %v", err)
			conditionsJSON = []byte("[]")
		}
		updates["conditions"] = conditionsJSON
	}

	// The profile counts as complete once a name and date of birth are on file
	fullName := user.FullName
	if req.FullName != nil {
		fullName = *req.FullName
	}
	dob := user.DateOfBirth
	if req.DateOfBirth != nil {
		dob = *req.DateOfBirth
	}
	updates["profile_complete"] = fullName != "" && dob != ""

	if err := db.Model(&user).Updates(updates).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}

	// Re-fetch so the response reflects exactly what was persisted
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
