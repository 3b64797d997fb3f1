package salaryslipstore

import (
	dbmodels "payroll-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.SalarySlip) (id string, err error)
	GetByID(id string) (rec *dbmodels.SalarySlip, err error)
	FindByEmployeeMonth(employeeID, month string) (rec *dbmodels.SalarySlip, err error)
	Update(id string, updMap map[string]interface{}) error
	List(employeeID string) (list []dbmodels.SalarySlip, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SalarySlip) (id string, err error) {
	err = i.db.
		Omit("Employee").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.SalarySlip, error) {
	rec := dbmodels.SalarySlip{}
	err := i.db.
		Where("id = ?", id).
		Preload("Employee").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindByEmployeeMonth(employeeID, month string) (*dbmodels.SalarySlip, error) {
	rec := dbmodels.SalarySlip{}
	err := i.db.
		Where("employee_id = ?", employeeID).
		Where("month = ?", month).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.SalarySlip{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) List(employeeID string) (list []dbmodels.SalarySlip, err error) {
	list = []dbmodels.SalarySlip{}
	tx := i.db.Model(&dbmodels.SalarySlip{})
	if employeeID != "" {
		tx = tx.Where("employee_id = ?", employeeID)
	}
	err = tx.
		Order("month DESC").
		Order("created_at DESC").
		Preload("Employee").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
