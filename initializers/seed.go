package initializers

import (
	"payroll-backend/config"
	usershandler "payroll-backend/lib/users"
	apperrors "payroll-backend/lib/utils/app-errors"
	"payroll-backend/models"
	usersapimodels "payroll-backend/models/api/users"

	log "github.com/sirupsen/logrus"
)

// InitSeed создает администратора и демо сотрудника, если они заданы в конфиге
func InitSeed() {
	seedUser(usershandler.Instance, usersapimodels.UserCreate{
		Name:     config.Conf.Seed.AdminName,
		Email:    config.Conf.Seed.AdminEmail,
		Password: config.Conf.Seed.AdminPassword,
		Role:     models.AdminRole,
	})
	seedUser(usershandler.Instance, usersapimodels.UserCreate{
		Name:     config.Conf.Seed.EmployeeName,
		Email:    config.Conf.Seed.EmployeeEmail,
		Password: config.Conf.Seed.EmployeePassword,
		Role:     models.EmployeeRole,
	})
}

func seedUser(users usershandler.Provider, request usersapimodels.UserCreate) {
	if request.Email == "" || request.Password == "" {
		return
	}
	logger := log.
		WithField("email", request.Email).
		WithField("role", request.Role)
	_, err := users.Create(request)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			logger.Debug("пользователь уже существует")
			return
		}
		logger.WithError(err).Error("ошибка создания пользователя при инициализации")
		return
	}
	logger.Info("пользователь создан при инициализации")
}
