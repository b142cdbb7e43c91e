package services

import (
	"fmt"
	"log"

	"relocation-api/config"
	"relocation-api/models"
)

// CreateNotification stores an in-app notification for a user. Notification
// failures are logged, never surfaced: they must not fail the action that
// triggered them.
func CreateNotification(userID uint, title, message, notifType string, clientID *uint) {
	row := models.Notification{
		UserID:          userID,
		Title:           title,
		Message:         message,
		Type:            notifType,
		RelatedClientID: clientID,
	}
	if err := config.DB.Create(&row).Error; err != nil {
		log.Printf("Warning: failed to create notification for user %d: %v", userID, err)
	}
}

// SendClientEmail emails a client in the background. SMTP being down must
// not fail the admin action that triggered the mail.
func SendClientEmail(to, subject, body string) {
	go func() {
		html := fmt.Sprintf("<html><body>%s</body></html>", body)
		if err := config.SendMail([]string{to}, subject, html); err != nil {
			log.Printf("Warning: failed to send email to %s: %v", to, err)
		}
	}()
}
