package services

import (
	"log"
	"time"

	"medtrack/internal/database"
	"medtrack/internal/models"

	"gorm.io/gorm"
)

// ReminderWorker periodically scans active medications and creates a
// MedicationReminder row for each dose that falls due within the lookahead
// window, emailing the owner when one is created.
type ReminderWorker struct {
	db           *gorm.DB
	emailService *EmailService
	interval     time.Duration
	lookahead    time.Duration
}

func NewReminderWorker() *ReminderWorker {
	return &ReminderWorker{
		db:           database.GetDB(),
		emailService: NewEmailService(),
		interval:     time.Minute,
		lookahead:    time.Minute * 15,
	}
}

func (w *ReminderWorker) Start() {
	go w.run()
}

func (w *ReminderWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for range ticker.C {
		w.checkDueDoses(time.Now())
	}
}

// nextDoseAfter returns the first scheduled dose at or after now, anchored
// at the medication's start time. Returns the zero time when the interval
// is zero (as-needed medications have no schedule).
func nextDoseAfter(start, now time.Time, interval time.Duration) time.Time {
	if interval <= 0 {
		return time.Time{}
	}
	if !now.After(start) {
		return start
	}
	elapsed := now.Sub(start)
	n := elapsed / interval
	if elapsed%interval != 0 {
		n++
	}
	return start.Add(n * interval)
}

// hasReminderScheduled reports whether a reminder already exists for the dose
func (w *ReminderWorker) hasReminderScheduled(medicationID uint, doseTime time.Time) bool {
	var count int64
	w.db.Model(&models.MedicationReminder{}).
		Where("medication_id = ? AND reminder_time = ?", medicationID, doseTime).
		Count(&count)
	return count > 0
}

func (w *ReminderWorker) checkDueDoses(now time.Time) {
	var medications []models.Medication
	if err := w.db.Where("active = ?", true).Find(&medications).Error; err != nil {
		log.Printf("Error: Failed to scan medications for reminders: %v", err)
		return
	}

	for _, medication := range medications {
		interval := medication.Frequency.DoseInterval()
		if interval == 0 {
			continue
		}

		doseTime := nextDoseAfter(medication.StartTime, now, interval)
		if doseTime.IsZero() || doseTime.After(now.Add(w.lookahead)) {
			continue
		}

		if w.hasReminderScheduled(medication.ID, doseTime) {
			continue
		}

		w.scheduleReminder(medication, doseTime)
	}
}

func (w *ReminderWorker) scheduleReminder(medication models.Medication, doseTime time.Time) {
	reminder := models.MedicationReminder{
		MedicationID: medication.ID,
		ReminderTime: doseTime,
	}
	if err := w.db.Create(&reminder).Error; err != nil {
		log.Printf("Error: Failed to create reminder for medication %d: %v", medication.ID, err)
		return
	}

	var user models.User
	if err := w.db.Where("id = ?", medication.UserID).First(&user).Error; err != nil {
		log.Printf("Warning: Owner %d missing for medication %d: %v", medication.UserID, medication.ID, err)
		return
	}

	if user.Email == "" {
		return
	}

	if err := w.emailService.SendDoseReminderEmail(user, medication, reminder); err != nil {
		log.Printf("Warning: Failed to send dose reminder for medication %d: %v", medication.ID, err)
		return
	}

	log.Printf("Scheduled %s dose reminder for medication %d at %s",
		medication.Frequency, medication.ID, doseTime.Format(time.RFC3339))
}
