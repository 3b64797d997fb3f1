package db

import (
	dbmodels "payroll-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func AutoMigrateDB(tx *gorm.DB) error {
	log.Info("Запуск миграций")
	if err := tx.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := tx.AutoMigrate(&dbmodels.SalarySlip{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SalarySlip")
	}
	if err := tx.AutoMigrate(&dbmodels.Expense{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Expense")
	}
	if err := tx.AutoMigrate(&dbmodels.Notification{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Notification")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
