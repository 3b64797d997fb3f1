package usershandler

import (
	"payroll-backend/db"
	usersstore "payroll-backend/lib/users/store"
	apperrors "payroll-backend/lib/utils/app-errors"
	authutils "payroll-backend/lib/utils/auth-utils"
	"payroll-backend/models"
	usersapimodels "payroll-backend/models/api/users"
	dbmodels "payroll-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(request usersapimodels.UserCreate) (usersapimodels.UserView, error)
	GetByID(userID string) (usersapimodels.UserView, error)
	FindEmployeeByEmail(email string) (usersapimodels.UserView, error)
	ListEmployees() ([]usersapimodels.UserShortView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB)
}

func NewInstance(DB *gorm.DB) Provider {
	return impl{
		db:        DB,
		userStore: usersstore.NewInstance(DB),
	}
}

type impl struct {
	db        *gorm.DB
	userStore usersstore.Provider
}

func (i impl) Create(request usersapimodels.UserCreate) (usersapimodels.UserView, error) {
	email := dbmodels.NormalizeEmail(request.Email)
	logger := log.
		WithField("email", email).
		WithField("role", request.Role)
	role := request.Role
	if role == "" {
		role = models.EmployeeRole
	}
	if !role.IsValid() {
		return usersapimodels.UserView{}, apperrors.NewValidation("указана неизвестная роль: %v", role)
	}
	passwordHash, err := authutils.HashPassword(request.Password)
	if err != nil {
		logger.WithError(err).Error("ошибка хеширования пароля")
		return usersapimodels.UserView{}, apperrors.Persistence(err, "ошибка создания пользователя")
	}
	rec := dbmodels.User{
		Name:     strings.TrimSpace(request.Name),
		Email:    email,
		Password: passwordHash,
		Role:     role,
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		userStore := usersstore.NewInstance(tx)
		if role.IsAdmin() {
			count, err := userStore.CountByRole(models.AdminRole)
			if err != nil {
				return err
			}
			if count > 0 {
				return apperrors.NewConflict("администратор уже существует")
			}
		}
		exist, err := userStore.FindByEmail(email)
		if err != nil {
			return err
		}
		if exist != nil {
			return apperrors.NewConflict("пользователь с такой почтой уже существует")
		}
		rec.ID, err = userStore.Create(rec)
		return err
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			// параллельная запись прошла раньше нас
			if role.IsAdmin() {
				return usersapimodels.UserView{}, apperrors.NewConflict("администратор уже существует")
			}
			return usersapimodels.UserView{}, apperrors.NewConflict("пользователь с такой почтой уже существует")
		}
		if apperrors.Is(err, apperrors.KindConflict) {
			return usersapimodels.UserView{}, err
		}
		logger.WithError(err).Error("ошибка создания пользователя")
		return usersapimodels.UserView{}, apperrors.Persistence(err, "ошибка создания пользователя")
	}
	return i.GetByID(rec.ID)
}

func (i impl) GetByID(userID string) (usersapimodels.UserView, error) {
	rec, err := i.userStore.GetByID(userID)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("ошибка поиска пользователя")
		return usersapimodels.UserView{}, apperrors.Persistence(err, "ошибка поиска пользователя")
	}
	if rec == nil {
		return usersapimodels.UserView{}, apperrors.NewNotFound("пользователь не найден")
	}
	return rec.ToModel(), nil
}

func (i impl) FindEmployeeByEmail(email string) (usersapimodels.UserView, error) {
	rec, err := i.userStore.FindByEmailAndRole(email, models.EmployeeRole)
	if err != nil {
		log.WithField("email", email).WithError(err).Error("ошибка поиска сотрудника")
		return usersapimodels.UserView{}, apperrors.Persistence(err, "ошибка поиска сотрудника")
	}
	if rec == nil {
		return usersapimodels.UserView{}, apperrors.NewNotFound("сотрудник с такой почтой не найден")
	}
	return rec.ToModel(), nil
}

func (i impl) ListEmployees() ([]usersapimodels.UserShortView, error) {
	list, err := i.userStore.ListByRole(models.EmployeeRole)
	if err != nil {
		log.WithError(err).Error("ошибка получения списка сотрудников")
		return nil, apperrors.Persistence(err, "ошибка получения списка сотрудников")
	}
	result := make([]usersapimodels.UserShortView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToShort())
	}
	return result, nil
}
