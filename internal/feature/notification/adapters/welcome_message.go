// Package adapters provides WelcomeSender implementations.
package adapters

import (
	"strings"

	"booking_backend/internal/feature/identity/domain/entity"
)

// AppName is shown in user-facing welcome messages.
const AppName = "Queue Craft Pro"

// WelcomeMessage renders the Hebrew welcome text for user.
func WelcomeMessage(user entity.User) string {
	name := strings.TrimSpace(user.FirstName + " " + user.LastName)
	if name == "" {
		return "ברוכים הבאים ל-" + AppName + "! אפשר להתחיל לקבוע תורים."
	}
	return "שלום " + name + ", ברוכים הבאים ל-" + AppName + "! אפשר להתחיל לקבוע תורים."
}
