package models

import (
	"time"

	"gorm.io/gorm"
)

// AccessLevel represents how much of a user's data a caregiver can see
type AccessLevel string

const (
	FullAccess     AccessLevel = "full"
	LimitedAccess  AccessLevel = "limited"
	ReadOnlyAccess AccessLevel = "read-only"
)

// Caregiver represents a caregiver account, separate from user accounts
type Caregiver struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username   string    `gorm:"uniqueIndex;size:30;not null" json:"username"`
	HashedPass string    `gorm:"size:255;not null" json:"-"`
	FullName   string    `gorm:"size:100;not null" json:"full_name"`
	Email      string    `gorm:"size:255" json:"email"`
	Phone      string    `gorm:"size:30" json:"phone"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook is called before creating a new caregiver
func (c *Caregiver) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the Caregiver model
func (Caregiver) TableName() string {
	return "caregiver"
}

// UserCaregiver links a caregiver to a user with an access level
type UserCaregiver struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint        `gorm:"not null;uniqueIndex:idx_user_caregiver" json:"user_id"`
	CaregiverID uint        `gorm:"not null;uniqueIndex:idx_user_caregiver" json:"caregiver_id"`
	AccessLevel AccessLevel `gorm:"size:20;not null;default:'full'" json:"access_level"`
	Active      bool        `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook is called before creating a new link
func (uc *UserCaregiver) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if uc.CreatedAt.IsZero() {
		uc.CreatedAt = now
	}
	if uc.UpdatedAt.IsZero() {
		uc.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the UserCaregiver model
func (UserCaregiver) TableName() string {
	return "user_caregiver"
}

// CreateCaregiverRequest represents the data needed to create a caregiver
// account and link it to the requesting user
type CreateCaregiverRequest struct {
	Username        string      `json:"username" binding:"required,alphanum,min=3,max=30"`
	Password        string      `json:"password" binding:"required,min=8"`
	ConfirmPassword string      `json:"confirm_password" binding:"required,eqfield=Password"`
	FullName        string      `json:"full_name" binding:"required,max=100"`
	Email           string      `json:"email" binding:"omitempty,email"`
	Phone           string      `json:"phone" binding:"omitempty,max=30"`
	AccessLevel     AccessLevel `json:"access_level" binding:"omitempty,oneof=full limited read-only"`
}

// UpdateAccessRequest represents changing a caregiver's access level
type UpdateAccessRequest struct {
	AccessLevel AccessLevel `json:"access_level" binding:"required,oneof=full limited read-only"`
	Active      *bool       `json:"active"`
}
