package models

import (
	"time"

	"gorm.io/gorm"
)

// Frequency represents how often a medication is taken
type Frequency string

const (
	Daily      Frequency = "daily"
	TwiceDaily Frequency = "twice_daily"
	Weekly     Frequency = "weekly"
	AsNeeded   Frequency = "as_needed"
)

// DoseInterval returns the time between doses for the frequency,
// or zero for medications taken only as needed.
func (f Frequency) DoseInterval() time.Duration {
	switch f {
	case Daily:
		return 24 * time.Hour
	case TwiceDaily:
		return 12 * time.Hour
	case Weekly:
		return 7 * 24 * time.Hour
	default:
		return 0
	}
}

// Medication represents a medication tracked by a user
type Medication struct {
	ID           uint                 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint                 `gorm:"not null;index" json:"user_id"`
	Name         string               `gorm:"size:100;not null" json:"name"`
	Dosage       string               `gorm:"size:50;not null" json:"dosage"`
	Frequency    Frequency            `gorm:"size:20;not null" json:"frequency"`
	StartTime    time.Time            `gorm:"not null" json:"start_time"`
	Instructions string               `gorm:"type:text" json:"instructions"`
	Active       bool                 `gorm:"not null;default:true" json:"active"`
	Reminders    []MedicationReminder `gorm:"foreignKey:MedicationID" json:"reminders,omitempty"`
	CreatedAt    time.Time            `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook is called before creating a new medication
func (m *Medication) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for the Medication model
func (Medication) TableName() string {
	return "medication"
}

// CreateMedicationRequest represents the data needed to add a medication
type CreateMedicationRequest struct {
	Name         string    `json:"name" binding:"required,max=100"`
	Dosage       string    `json:"dosage" binding:"required,max=50"`
	Frequency    Frequency `json:"frequency" binding:"required,oneof=daily twice_daily weekly as_needed"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	Instructions string    `json:"instructions" binding:"omitempty,max=1000"`
}

// UpdateMedicationRequest represents a partial medication update
type UpdateMedicationRequest struct {
	Name         *string    `json:"name" binding:"omitempty,max=100"`
	Dosage       *string    `json:"dosage" binding:"omitempty,max=50"`
	Frequency    *Frequency `json:"frequency" binding:"omitempty,oneof=daily twice_daily weekly as_needed"`
	StartTime    *time.Time `json:"start_time"`
	Instructions *string    `json:"instructions" binding:"omitempty,max=1000"`
	Active       *bool      `json:"active"`
}
