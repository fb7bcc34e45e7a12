package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a patient account in the system
type User struct {
	ID              uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Username        string         `gorm:"uniqueIndex;size:30;not null" json:"username"`
	HashedPass      string         `gorm:"size:255;not null" json:"-"`
	FullName        string         `gorm:"size:100" json:"full_name"`
	Email           string         `gorm:"size:255" json:"email"`
	Phone           string         `gorm:"size:30" json:"phone"`
	DateOfBirth     string         `gorm:"size:10" json:"date_of_birth"` // YYYY-MM-DD
	Conditions      datatypes.JSON `gorm:"default:'[]'" json:"conditions"`
	ProfileComplete bool           `gorm:"not null;default:false" json:"profile_complete"`
	Medications     []Medication   `gorm:"foreignKey:UserID" json:"medications,omitempty"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook is called before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	return nil
}

// BeforeSave hook is called before saving the user
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "user"
}

// LoginLog records a login attempt for auditing
type LoginLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:30;not null;index" json:"username"`
	IP        string    `gorm:"size:45" json:"ip"`
	Success   bool      `gorm:"not null" json:"success"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName specifies the table name for the LoginLog model
func (LoginLog) TableName() string {
	return "login_log"
}

// RegisterRequest represents the data needed to create a new user account
type RegisterRequest struct {
	Username string `json:"username" binding:"required,alphanum,min=3,max=30"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"omitempty,max=100"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// LoginRequest represents the data needed for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	FullName    *string  `json:"full_name" binding:"omitempty,max=100"`
	Email       *string  `json:"email" binding:"omitempty,email"`
	Phone       *string  `json:"phone" binding:"omitempty,max=30"`
	DateOfBirth *string  `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Conditions  []string `json:"conditions" binding:"omitempty,dive,max=100"`
}
