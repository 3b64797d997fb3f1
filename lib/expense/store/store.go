package expensestore

import (
	"payroll-backend/models"
	dbmodels "payroll-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Expense) (id string, err error)
	GetByID(id string) (rec *dbmodels.Expense, err error)
	// Transition обновляет запись только если текущий статус равен from, false если запись не обновлена
	Transition(id string, from models.ExpenseStatus, updMap map[string]interface{}) (updated bool, err error)
	List(employeeID string) (list []dbmodels.Expense, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Expense) (id string, err error) {
	err = i.db.
		Omit("Employee", "ReviewedBy").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Expense, error) {
	rec := dbmodels.Expense{}
	err := i.db.
		Where("id = ?", id).
		Preload("Employee").
		Preload("ReviewedBy").
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

func (i impl) Transition(id string, from models.ExpenseStatus, updMap map[string]interface{}) (bool, error) {
	if len(updMap) == 0 {
		return false, nil
	}
	tx := i.db.
		Model(&dbmodels.Expense{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}

// List пустой employeeID возвращает все заявки
func (i impl) List(employeeID string) (list []dbmodels.Expense, err error) {
	list = []dbmodels.Expense{}
	tx := i.db.Model(&dbmodels.Expense{})
	if employeeID != "" {
		tx = tx.Where("employee_id = ?", employeeID)
	}
	err = tx.
		Order("created_at DESC").
		Preload("Employee").
		Preload("ReviewedBy").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
