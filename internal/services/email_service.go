package services

import (
	"fmt"
	"os"

	"medtrack/internal/models"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_NOTIFICATIONS_FROM_EMAIL")
	fromName := os.Getenv("SENDGRID_FROM_NAME")

	client := sendgrid.NewSendClient(apiKey)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendDoseReminderEmail notifies a user that a dose is due
func (s *EmailService) SendDoseReminderEmail(user models.User, medication models.Medication, reminder models.MedicationReminder) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(user.Username, user.Email)
	subject := fmt.Sprintf("Reminder: time to take %s", medication.Name)

	plainContent := fmt.Sprintf("Hello %s, Your %s dose of %s is due at %s.",
		user.Username, medication.Dosage, medication.Name,
		reminder.ReminderTime.Format("Mon Jan 2, 3:04 PM"))

	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>Your %s dose of <strong>%s</strong> is due at %s.</p>",
		user.Username, medication.Dosage, medication.Name,
		reminder.ReminderTime.Format("Mon Jan 2, 3:04 PM"))

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email to %s: %d", user.Email, response.StatusCode)
	}

	return nil
}

// SendCaregiverLinkedEmail notifies a caregiver that an account was created for them
func (s *EmailService) SendCaregiverLinkedEmail(email, fullName string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(fullName, email)
	subject := "You've been added as a caregiver on MedTrack"

	plainContent := fmt.Sprintf("Hello %s, A MedTrack user has added you as their caregiver. Log in to view their medication schedule.", fullName)
	htmlContent := fmt.Sprintf("<p>Hello %s,</p><p>A MedTrack user has added you as their caregiver. Log in to view their medication schedule.</p>", fullName)

	message := mail.NewSingleEmail(from, subject, to, plainContent, htmlContent)
	_, err := s.client.Send(message)
	return err
}
