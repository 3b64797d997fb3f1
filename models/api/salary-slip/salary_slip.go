package salaryslipapimodels

import (
	"math"
	apperrors "payroll-backend/lib/utils/app-errors"
	"payroll-backend/models"
	usersapimodels "payroll-backend/models/api/users"
	"strings"
	"time"
)

type SalarySlipCreate struct {
	EmployeeID    string   `json:"employeeId"`    // Идентификатор сотрудника
	EmployeeEmail string   `json:"employeeEmail"` // Почта сотрудника, если не указан идентификатор
	Month         string   `json:"month"`         // Месяц в формате YYYY-MM
	BasicSalary   *float64 `json:"basicSalary"`   // Оклад
	Allowances    *float64 `json:"allowances"`    // Надбавки, по умолчанию 0
	Deductions    *float64 `json:"deductions"`    // Удержания, по умолчанию 0
	NetSalary     *float64 `json:"netSalary"`     // Игнорируется, считается на сервере
}

func (r SalarySlipCreate) Validate() error {
	if strings.TrimSpace(r.EmployeeID) == "" && strings.TrimSpace(r.EmployeeEmail) == "" {
		return apperrors.NewValidation("необходимо указать employeeId или employeeEmail")
	}
	if !models.IsValidMonth(r.Month) {
		return apperrors.NewValidation("месяц должен быть в формате YYYY-MM")
	}
	if r.BasicSalary == nil {
		return apperrors.NewValidation("не указан оклад")
	}
	if err := validateAmount(r.BasicSalary, "оклад"); err != nil {
		return err
	}
	if err := validateAmount(r.Allowances, "надбавки"); err != nil {
		return err
	}
	return validateAmount(r.Deductions, "удержания")
}

type SalarySlipUpdate struct {
	Month       *string  `json:"month"`
	BasicSalary *float64 `json:"basicSalary"`
	Allowances  *float64 `json:"allowances"`
	Deductions  *float64 `json:"deductions"`
	NetSalary   *float64 `json:"netSalary"` // Игнорируется, считается на сервере
}

func (r SalarySlipUpdate) Validate() error {
	if r.Month != nil && !models.IsValidMonth(*r.Month) {
		return apperrors.NewValidation("месяц должен быть в формате YYYY-MM")
	}
	if err := validateAmount(r.BasicSalary, "оклад"); err != nil {
		return err
	}
	if err := validateAmount(r.Allowances, "надбавки"); err != nil {
		return err
	}
	return validateAmount(r.Deductions, "удержания")
}

func validateAmount(value *float64, name string) error {
	if value == nil {
		return nil
	}
	if math.IsNaN(*value) || math.IsInf(*value, 0) || *value < 0 {
		return apperrors.NewValidation("%s: ожидается неотрицательное число", name)
	}
	return nil
}

type SalarySlipView struct {
	ID          string                       `json:"id"`
	Employee    usersapimodels.UserShortView `json:"employee"`
	Month       string                       `json:"month"`
	BasicSalary float64                      `json:"basic_salary"`
	Allowances  float64                      `json:"allowances"`
	Deductions  float64                      `json:"deductions"`
	NetSalary   float64                      `json:"net_salary"`
	Status      models.SalarySlipStatus      `json:"status"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`
}
