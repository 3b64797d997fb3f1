// Package accesspolicy все правила доступа к записям в одном месте.
// Контроллеры и обработчики не проверяют роли самостоятельно.
package accesspolicy

import (
	"payroll-backend/models"
	dbmodels "payroll-backend/models/db"
)

type Actor struct {
	ID   string
	Role models.UserRole
	// Name и Email из токена, только для писем
	Name  string
	Email string
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// CanRead владелец видит свои записи, администратор видит все, что разрешает сама запись
func CanRead(actor Actor, entity dbmodels.Owned) bool {
	if actor.ID == "" || entity == nil {
		return false
	}
	if entity.GetOwnerID() == actor.ID {
		return true
	}
	return actor.IsAdmin() && entity.VisibleToAdmin()
}

// CanTransition проверяет только роль, допустимость перехода по статусу решает процесс заявки
func CanTransition(actor Actor, expense dbmodels.Expense, action Action) bool {
	switch action {
	case ActionApprove, ActionReject:
		return actor.ID != "" && actor.IsAdmin()
	}
	return false
}

func CanSubmitExpense(actor Actor) bool {
	return actor.ID != "" && actor.Role == models.EmployeeRole
}

func CanCreateSlip(actor Actor) bool {
	return actor.ID != "" && actor.IsAdmin()
}

func CanUpdateSlip(actor Actor) bool {
	return CanCreateSlip(actor)
}

// CanListAll список без фильтра по владельцу
func CanListAll(actor Actor) bool {
	return actor.IsAdmin()
}

// OwnerFilter идентификатор для фильтрации списков, пустая строка значит без фильтра
func OwnerFilter(actor Actor) string {
	if CanListAll(actor) {
		return ""
	}
	return actor.ID
}
