package expenseapimodels

import (
	"math"
	apperrors "payroll-backend/lib/utils/app-errors"
	"payroll-backend/models"
	usersapimodels "payroll-backend/models/api/users"
	"strings"
	"time"
)

type ExpenseData struct {
	Month       string                 `json:"month"`       // Месяц в формате YYYY-MM
	Category    models.ExpenseCategory `json:"category"`    // travel/food/accommodation/utilities/other
	Description string                 `json:"description"` // Описание расхода
	Amount      *float64               `json:"amount"`      // Сумма, не меньше 0
	Receipt     string                 `json:"receipt"`     // Ссылка на чек или ключ загруженного файла
}

func (r ExpenseData) Validate() error {
	if !models.IsValidMonth(r.Month) {
		return apperrors.NewValidation("месяц должен быть в формате YYYY-MM")
	}
	if !r.Category.IsValid() {
		return apperrors.NewValidation("указана неизвестная категория: %v", r.Category)
	}
	if strings.TrimSpace(r.Description) == "" {
		return apperrors.NewValidation("не указано описание")
	}
	if r.Amount == nil {
		return apperrors.NewValidation("не указана сумма")
	}
	if math.IsNaN(*r.Amount) || math.IsInf(*r.Amount, 0) || *r.Amount < 0 {
		return apperrors.NewValidation("сумма должна быть неотрицательным числом")
	}
	return nil
}

type RejectRequest struct {
	RejectionReason string `json:"rejectionReason"` // Причина отклонения, необязательно
}

type ExpenseView struct {
	ID              string                        `json:"id"`
	Employee        usersapimodels.UserShortView  `json:"employee"`
	Month           string                        `json:"month"`
	Category        models.ExpenseCategory        `json:"category"`
	Description     string                        `json:"description"`
	Amount          float64                       `json:"amount"`
	Receipt         string                        `json:"receipt,omitempty"`
	Status          models.ExpenseStatus          `json:"status"`
	ReviewedBy      *usersapimodels.UserShortView `json:"reviewed_by"`
	ReviewedAt      *time.Time                    `json:"reviewed_at"`
	RejectionReason string                        `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time                     `json:"created_at"`
	UpdatedAt       time.Time                     `json:"updated_at"`
}

type ReceiptView struct {
	Receipt string `json:"receipt"` // Ключ файла для поля receipt
}
