package models

type NotificationType string

const (
	NotificationSalarySlip       NotificationType = "salary_slip"
	NotificationExpenseApproved  NotificationType = "expense_approved"
	NotificationExpenseRejected  NotificationType = "expense_rejected"
	NotificationExpenseSubmitted NotificationType = "expense_submitted"
	NotificationSystem           NotificationType = "system"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationSalarySlip, NotificationExpenseApproved, NotificationExpenseRejected,
		NotificationExpenseSubmitted, NotificationSystem:
		return true
	}
	return false
}

const NotificationListLimit = 50
