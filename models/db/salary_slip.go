package dbmodels

import (
	"payroll-backend/models"
	salaryslipapimodels "payroll-backend/models/api/salary-slip"
	usersapimodels "payroll-backend/models/api/users"
)

type SalarySlip struct {
	BaseModel
	EmployeeID  string  `gorm:"type:varchar(36);uniqueIndex:idx_slip_employee_month"`
	Employee    *User   `gorm:"foreignKey:EmployeeID"`
	Month       string  `gorm:"type:varchar(7);uniqueIndex:idx_slip_employee_month"`
	BasicSalary float64
	Allowances  float64
	Deductions  float64
	NetSalary   float64
	Status      models.SalarySlipStatus `gorm:"type:varchar(20)"`
}

// CalcNetSalary единственный способ получить итог, значение от клиента не принимается
func CalcNetSalary(basicSalary, allowances, deductions float64) float64 {
	return basicSalary + allowances - deductions
}

func (r SalarySlip) GetOwnerID() string {
	return r.EmployeeID
}

func (r SalarySlip) VisibleToAdmin() bool {
	return true
}

func (r SalarySlip) ToModel() salaryslipapimodels.SalarySlipView {
	result := salaryslipapimodels.SalarySlipView{
		ID:          r.ID,
		Employee:    usersapimodels.UserShortView{ID: r.EmployeeID},
		Month:       r.Month,
		BasicSalary: r.BasicSalary,
		Allowances:  r.Allowances,
		Deductions:  r.Deductions,
		NetSalary:   r.NetSalary,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Employee != nil {
		result.Employee = r.Employee.ToShort()
	}
	return result
}
