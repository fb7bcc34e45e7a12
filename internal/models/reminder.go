package models

import (
	"time"

	"gorm.io/gorm"
)

// MedicationReminder represents a single scheduled dose of a medication.
// Taken and Skipped are independent flags: a dose can be marked skipped
// after having been marked taken in error, and vice versa.
type MedicationReminder struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	MedicationID uint       `gorm:"not null;index:idx_reminder_medication_time" json:"medication_id"`
	ReminderTime time.Time  `gorm:"not null;index:idx_reminder_medication_time" json:"reminder_time"`
	Taken        bool       `gorm:"not null;default:false" json:"taken"`
	TakenAt      *time.Time `json:"taken_at"`
	Skipped      bool       `gorm:"not null;default:false" json:"skipped"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook is called before creating a new reminder
func (r *MedicationReminder) BeforeCreate(tx *gorm.DB) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}

// TableName specifies the table name for the MedicationReminder model
func (MedicationReminder) TableName() string {
	return "medication_reminder"
}

// UpdateReminderRequest represents marking a dose taken or skipped
type UpdateReminderRequest struct {
	Taken   *bool `json:"taken"`
	Skipped *bool `json:"skipped"`
}
