package handlers

import (
	"errors"
	"log"
	"net/http"

	"medtrack/internal/auth"
	"medtrack/internal/database"
	"medtrack/internal/models"
	"medtrack/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CaregiverWithAccess is a caregiver merged with the access level the
// requesting user granted them
type CaregiverWithAccess struct {
	models.Caregiver
	AccessLevel models.AccessLevel `json:"access_level"`
	Active      bool               `json:"active"`
}

// GetCaregivers lists the caregivers linked to the authenticated user
func GetCaregivers(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	db := database.GetDB()
	var links []models.UserCaregiver
	if err := db.Where("user_id = ?", userID).Find(&links).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch caregivers", err)
		return
	}

	result := make([]CaregiverWithAccess, 0, len(links))
	for _, link := range links {
		var caregiver models.Caregiver
		if err := db.Where("id = ?", link.CaregiverID).First(&caregiver).Error; err != nil {
			log.Printf("Warning: Caregiver %d missing for link %d: %v", link.CaregiverID, link.ID, err)
			continue
		}
		result = append(result, CaregiverWithAccess{
			Caregiver:   caregiver,
			AccessLevel: link.AccessLevel,
			Active:      link.Active,
		})
	}

	c.JSON(http.StatusOK, result)
}

// CreateCaregiver creates a caregiver account and links it to the
// authenticated user in a single transaction, so a failed link never
// leaves an orphan caregiver row behind.
func CreateCaregiver(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	var req models.CreateCaregiverRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		handleError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	db := database.GetDB()

	// Reject duplicate caregiver usernames up front
	var existing models.Caregiver
	err := db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "caregiver username already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		handleError(c, http.StatusInternalServerError, "Failed to check caregiver username", err)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create caregiver", err)
		return
	}

	accessLevel := req.AccessLevel
	if accessLevel == "" {
		accessLevel = models.FullAccess
	}

	caregiver := models.Caregiver{
		Username:   req.Username,
		HashedPass: hashed,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
	}
	var link models.UserCaregiver

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&caregiver).Error; err != nil {
			return err
		}
		link = models.UserCaregiver{
			UserID:      userID,
			CaregiverID: caregiver.ID,
			AccessLevel: accessLevel,
			Active:      true,
		}
		return tx.Create(&link).Error
	})
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create caregiver", err)
		return
	}

	// Best-effort notification; the link is already committed
	if caregiver.Email != "" {
		go func(cg models.Caregiver) {
			if err := services.NewEmailService().SendCaregiverLinkedEmail(cg.Email, cg.FullName); err != nil {
				log.Printf("Warning: Failed to send caregiver linked email: %v", err)
			}
		}(caregiver)
	}

	c.JSON(http.StatusCreated, CaregiverWithAccess{
		Caregiver:   caregiver,
		AccessLevel: link.AccessLevel,
		Active:      link.Active,
	})
}

// UpdateCaregiverAccess changes the access level of a caregiver link.
// The caregiver must exist (404) and must be linked to the requesting
// user (403) before the body is validated.
func UpdateCaregiverAccess(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := database.GetDB()

	var caregiver models.Caregiver
	if err := db.Where("id = ?", id).First(&caregiver).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "caregiver not found"})
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve caregiver", err)
		return
	}

	var link models.UserCaregiver
	if err := db.Where("user_id = ? AND caregiver_id = ?", userID, caregiver.ID).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error: User %d has no link to caregiver %d", userID, caregiver.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "not authorized to manage this caregiver"})
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to retrieve caregiver link", err)
		return
	}

	var req models.UpdateAccessRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := map[string]interface{}{"access_level": req.AccessLevel}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if err := db.Model(&link).Updates(updates).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update caregiver access", err)
		return
	}
	if err := db.Where("id = ?", link.ID).First(&link).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to retrieve caregiver link", err)
		return
	}

	c.JSON(http.StatusOK, link)
}
