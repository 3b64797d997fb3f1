package dbmodels

import (
	"payroll-backend/models"
	notificationapimodels "payroll-backend/models/api/notification"
)

type Notification struct {
	BaseModel
	UserID  string                  `gorm:"type:varchar(36);index:idx_notification_user_read"`
	Type    models.NotificationType `gorm:"type:varchar(30)"`
	Title   string
	Message string
	Read    bool `gorm:"index:idx_notification_user_read"`
	Link    string
}

func (r Notification) GetOwnerID() string {
	return r.UserID
}

// VisibleToAdmin уведомления читает только получатель
func (r Notification) VisibleToAdmin() bool {
	return false
}

func (r Notification) ToModel() notificationapimodels.NotificationView {
	return notificationapimodels.NotificationView{
		ID:        r.ID,
		Type:      r.Type,
		Title:     r.Title,
		Message:   r.Message,
		Read:      r.Read,
		Link:      r.Link,
		CreatedAt: r.CreatedAt,
	}
}
