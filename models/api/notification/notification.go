package notificationapimodels

import (
	"payroll-backend/models"
	"time"
)

type NotificationView struct {
	ID        string                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Read      bool                    `json:"read"`
	Link      string                  `json:"link,omitempty"`
	CreatedAt time.Time               `json:"created_at"`
}

type UnreadCount struct {
	UnreadCount int64 `json:"unreadCount"`
}
