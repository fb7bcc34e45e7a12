package handlers

import (
	"errors"
	"log"
	"net/http"

	"medtrack/internal/auth"
	"medtrack/internal/database"
	"medtrack/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// findOwnedMedication fetches a medication and enforces ownership. The check
// order is fixed: existence (404) before ownership (403), so a request for a
// missing resource never leaks whether it belonged to someone else.
func findOwnedMedication(c *gin.Context, id uint) (*models.Medication, bool) {
	db := database.GetDB()

	var medication models.Medication
	if err := db.Where("id = ?", id).First(&medication).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "medication not found"})
			return nil, false
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve medication", err)
		return nil, false
	}

	if medication.UserID != auth.CurrentUserID(c) {
		log.Printf("Error: User %d not authorized for medication %d", auth.CurrentUserID(c), id)
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to access this medication"})
		return nil, false
	}

	return &medication, true
}

// GetMedications handles listing the authenticated user's medications
func GetMedications(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	db := database.GetDB()
	query := db.Where("user_id = ?", userID)

	// Optional filters
	if name := c.Query("name"); name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var medications []models.Medication
	if err := query.Order("created_at DESC").Find(&medications).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch medications", err)
		return
	}

	c.JSON(http.StatusOK, medications)
}

// GetMedication handles fetching a single medication by ID
func GetMedication(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	medication, ok := findOwnedMedication(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, medication)
}

// CreateMedication handles adding a new medication for the authenticated user
func CreateMedication(c *gin.Context) {
	var req models.CreateMedicationRequest
	if !bindJSON(c, &req) {
		return
	}

	medication := models.Medication{
		UserID:       auth.CurrentUserID(c),
		Name:         req.Name,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		StartTime:    req.StartTime,
		Instructions: req.Instructions,
		Active:       true,
	}

	db := database.GetDB()
	if err := db.Create(&medication).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create medication", err)
		return
	}

	c.JSON(http.StatusCreated, medication)
}

// UpdateMedication handles a partial update of a medication
func UpdateMedication(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// Existence and ownership are checked before the body is read, so a
	// malformed request against someone else's medication still gets a 403
	medication, ok := findOwnedMedication(c, id)
	if !ok {
		return
	}

	var req models.UpdateMedicationRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Dosage != nil {
		updates["dosage"] = *req.Dosage
	}
	if req.Frequency != nil {
		updates["frequency"] = *req.Frequency
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.Instructions != nil {
		updates["instructions"] = *req.Instructions
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	db := database.GetDB()
	if len(updates) > 0 {
		if err := db.Model(medication).Updates(updates).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to update medication", err)
			return
		}
		if err := db.Where("id = ?", id).First(medication).Error; err != nil {
			handleError(c, http.StatusInternalServerError, "Failed to retrieve medication", err)
			return
		}
	}

	c.JSON(http.StatusOK, medication)
}

// DeleteMedication removes a medication and its reminders
func DeleteMedication(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	medication, ok := findOwnedMedication(c, id)
	if !ok {
		return
	}

	// Reminders go in the same transaction so a medication is never deleted
	// while its dose history is left behind
	db := database.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("medication_id = ?", medication.ID).
			Delete(&models.MedicationReminder{}).Error; err != nil {
			return err
		}
		return tx.Delete(medication).Error
	})
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to delete medication", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMedicationReminders lists the reminders for one of the user's medications
func GetMedicationReminders(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	medication, ok := findOwnedMedication(c, id)
	if !ok {
		return
	}

	db := database.GetDB()
	var reminders []models.MedicationReminder
	if err := db.Where("medication_id = ?", medication.ID).
		Order("reminder_time DESC").
		Find(&reminders).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch reminders", err)
		return
	}

	c.JSON(http.StatusOK, reminders)
}
