package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"medtrack/internal/auth"
	"medtrack/internal/database"
	"medtrack/internal/models"
	"medtrack/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Register handles new user registration
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	// Validate password strength
	if err := auth.ValidatePassword(req.Password); err != nil {
		handleError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	user := models.User{
		Username:   req.Username,
		HashedPass: hashed,
		FullName:   req.FullName,
		Email:      req.Email,
	}

	db := database.GetDB()
	if err := db.Create(&user).Error; err != nil {
		// Check for common database errors like duplicate usernames
		if strings.Contains(err.Error(), "duplicate key") ||
			strings.Contains(err.Error(), "UNIQUE constraint") {
			handleError(c, http.StatusBadRequest, "Username already exists", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to create account", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login handles user authentication and creates a session
func Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	db := database.GetDB()
	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			recordLoginAttempt(c, req.Username, false)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		handleError(c, http.StatusInternalServerError, "Login attempt failed", err)
		return
	}

	if !auth.CheckPassword(user.HashedPass, req.Password) {
		recordLoginAttempt(c, req.Username, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if err := auth.CreateSession(c, &user); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create session", err)
		return
	}

	recordLoginAttempt(c, user.Username, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"user": gin.H{
			"id":               user.ID,
			"username":         user.Username,
			"full_name":        user.FullName,
			"profile_complete": user.ProfileComplete,
		},
	})
}

// recordLoginAttempt writes a login audit row; failures are logged, not surfaced
func recordLoginAttempt(c *gin.Context, username string, success bool) {
	entry := models.LoginLog{
		Username:  username,
		IP:        utils.GetRealClientIP(c),
		Success:   success,
		CreatedAt: time.Now(),
	}
	if err := database.GetDB().Create(&entry).Error; err != nil {
		log.Printf("Warning: Failed to record login attempt: %v", err)
	}
}

// Logout handles user logout by deleting the session and clearing the cookie
func Logout(c *gin.Context) {
	auth.DeleteSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "logout successful"})
}

// GetCurrentUser returns the currently authenticated user
func GetCurrentUser(c *gin.Context) {
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

	c.JSON(http.StatusOK, user)
}
