package usersapimodels

import (
	"payroll-backend/models"
	"time"
)

type UserCreate struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
}

type UserView struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	RoleName  string          `json:"role_name"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserShortView для вложения в заявки и расчетные листы
type UserShortView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}
