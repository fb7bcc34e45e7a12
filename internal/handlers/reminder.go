package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"medtrack/internal/auth"
	"medtrack/internal/database"
	"medtrack/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateReminder marks a dose taken or skipped. The storage layer has no
// notion of reminder ownership, so the owning medication is fetched and
// verified against the session user before anything is written.
func UpdateReminder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()

	var reminder models.MedicationReminder
	if err := db.Where("id = ?", id).First(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve reminder", err)
		return
	}

	var medication models.Medication
	if err := db.Where("id = ?", reminder.MedicationID).First(&medication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Orphaned reminder; treat the same as a missing resource
			c.JSON(http.StatusNotFound, gin.H{"error": "reminder not found"})
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve medication", err)
		return
	}

	if medication.UserID != auth.CurrentUserID(c) {
		log.Printf("Error: User %d not authorized for reminder %d", auth.CurrentUserID(c), id)
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to update this reminder"})
		return
	}

	var req models.UpdateReminderRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Taken != nil {
		updates["taken"] = *req.Taken
		if *req.Taken {
			now := time.Now()
			updates["taken_at"] = &now
		} else {
			updates["taken_at"] = nil
		}
	}
	if req.Skipped != nil {
		updates["skipped"] = *req.Skipped
	}

	if len(updates) > 0 {
		if err := db.Model(&reminder).Updates(updates).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to update reminder", err)
			return
		}
		if err := db.Where("id = ?", id).First(&reminder).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to retrieve reminder", err)
			return
		}
	}

	c.JSON(http.StatusOK, reminder)
}
