package authapimodels

import (
	"net/mail"
	apperrors "payroll-backend/lib/utils/app-errors"
	"payroll-backend/models"
	"strings"
)

const MinPasswordLength = 6

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	_, err := mail.ParseAddress(strings.TrimSpace(r.Email))
	if err != nil {
		return apperrors.NewValidation("почта имеет неправильный формат")
	}
	if r.Password == "" {
		return apperrors.NewValidation("не указан пароль")
	}
	return nil
}

type SignupRequest struct {
	Name     string          `json:"name"`     // Имя сотрудника
	Email    string          `json:"email"`    // Email, он же логин
	Password string          `json:"password"` // Пароль, не короче 6 символов
	Role     models.UserRole `json:"role"`     // Роль, по умолчанию employee
}

func (r SignupRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.NewValidation("не указано имя")
	}
	_, err := mail.ParseAddress(strings.TrimSpace(r.Email))
	if err != nil {
		return apperrors.NewValidation("почта имеет неправильный формат")
	}
	if len(r.Password) < MinPasswordLength {
		return apperrors.NewValidation("пароль должен содержать не менее %d символов", MinPasswordLength)
	}
	if r.Role != "" && !r.Role.IsValid() {
		return apperrors.NewValidation("указана неизвестная роль: %v", r.Role)
	}
	return nil
}
