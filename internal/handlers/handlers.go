package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"medtrack/internal/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ValidationIssue describes a single field-level validation failure
type ValidationIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// bindJSON binds and validates the request body. On failure it writes a 400
// response with a structured issue list and returns false.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			issues := make([]ValidationIssue, 0, len(verrs))
			for _, fe := range verrs {
				issues = append(issues, ValidationIssue{
					Field: fe.Field(),
					Rule:  fe.Tag(),
					Param: fe.Param(),
				})
			}
			log.Printf("Error: Invalid input: %s", err.Error())
			c.JSON(http.StatusBadRequest, gin.H{"error": issues})
			return false
		}
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// parseIDParam parses a numeric path parameter. Unparseable ids are treated
// the same as ids that don't exist.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return 0, false
	}
	return uint(id), true
}

// HomeHandler handles requests to the root path "/"
func HomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to MedTrack!")
}

// HealthHandler is a simple health check endpoint
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// NewRouter builds the gin engine with all application routes
func NewRouter() *gin.Engine {
	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1"})

	// CORS for the SPA; credentials required for the session cookie
	origins := []string{"http://localhost:5173"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	router.GET("/", HomeHandler)
	router.GET("/api/health", HealthHandler)

	// Auth routes (no auth required)
	router.POST("/api/auth/register", Register)
	router.POST("/api/auth/login", Login)

	// Protected routes (auth required)
	protected := router.Group("/api")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/auth/logout", Logout)
		protected.GET("/auth/me", GetCurrentUser)

		protected.PUT("/profile", UpdateProfile)

		protected.GET("/medications", GetMedications)
		protected.POST("/medications", CreateMedication)
		protected.GET("/medications/:id", GetMedication)
		protected.PUT("/medications/:id", UpdateMedication)
		protected.DELETE("/medications/:id", DeleteMedication)
		protected.GET("/medications/:id/reminders", GetMedicationReminders)

		protected.PUT("/reminders/:id", UpdateReminder)

		protected.GET("/caregivers", GetCaregivers)
		protected.POST("/caregivers", CreateCaregiver)
		protected.PUT("/caregivers/:id/access", UpdateCaregiverAccess)
	}

	return router
}
