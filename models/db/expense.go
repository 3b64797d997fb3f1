package dbmodels

import (
	"payroll-backend/models"
	expenseapimodels "payroll-backend/models/api/expense"
	usersapimodels "payroll-backend/models/api/users"
	"time"
)

type Expense struct {
	BaseModel
	EmployeeID      string                 `gorm:"type:varchar(36);index:idx_expense_employee"`
	Employee        *User                  `gorm:"foreignKey:EmployeeID"`
	Month           string                 `gorm:"type:varchar(7)"`
	Category        models.ExpenseCategory `gorm:"type:varchar(20)"`
	Description     string
	Amount          float64
	Receipt         string
	Status          models.ExpenseStatus `gorm:"type:varchar(20);index:idx_expense_status"`
	ReviewedByID    *string              `gorm:"type:varchar(36)"`
	ReviewedBy      *User                `gorm:"foreignKey:ReviewedByID"`
	ReviewedAt      *time.Time
	RejectionReason string
}

func (r Expense) GetOwnerID() string {
	return r.EmployeeID
}

func (r Expense) VisibleToAdmin() bool {
	return true
}

func (r Expense) ToModel() expenseapimodels.ExpenseView {
	result := expenseapimodels.ExpenseView{
		ID:              r.ID,
		Employee:        usersapimodels.UserShortView{ID: r.EmployeeID},
		Month:           r.Month,
		Category:        r.Category,
		Description:     r.Description,
		Amount:          r.Amount,
		Receipt:         r.Receipt,
		Status:          r.Status,
		ReviewedAt:      r.ReviewedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	if r.Employee != nil {
		result.Employee = r.Employee.ToShort()
	}
	if r.ReviewedByID != nil {
		reviewer := usersapimodels.UserShortView{ID: *r.ReviewedByID}
		if r.ReviewedBy != nil {
			reviewer.Name = r.ReviewedBy.Name
		}
		result.ReviewedBy = &reviewer
	}
	return result
}
