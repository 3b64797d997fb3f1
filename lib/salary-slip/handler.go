package salarysliphandler

import (
	"fmt"
	"payroll-backend/db"
	accesspolicy "payroll-backend/lib/access"
	"payroll-backend/lib/email"
	notificationhandler "payroll-backend/lib/notification"
	salaryslipstore "payroll-backend/lib/salary-slip/store"
	usersstore "payroll-backend/lib/users/store"
	apperrors "payroll-backend/lib/utils/app-errors"
	"payroll-backend/models"
	notificationapimodels "payroll-backend/models/api/notification"
	salaryslipapimodels "payroll-backend/models/api/salary-slip"
	dbmodels "payroll-backend/models/db"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(actor accesspolicy.Actor, request salaryslipapimodels.SalarySlipCreate) (salaryslipapimodels.SalarySlipView, error)
	Update(actor accesspolicy.Actor, slipID string, request salaryslipapimodels.SalarySlipUpdate) (salaryslipapimodels.SalarySlipView, error)
	List(actor accesspolicy.Actor) ([]salaryslipapimodels.SalarySlipView, error)
	Get(actor accesspolicy.Actor, slipID string) (salaryslipapimodels.SalarySlipView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, notificationhandler.Instance, email.Instance)
}

func NewInstance(DB *gorm.DB, notifier notificationhandler.Provider, mailer email.Provider) Provider {
	return impl{
		db:        DB,
		slipStore: salaryslipstore.NewInstance(DB),
		userStore: usersstore.NewInstance(DB),
		notifier:  notifier,
		mailer:    mailer,
	}
}

type impl struct {
	db        *gorm.DB
	slipStore salaryslipstore.Provider
	userStore usersstore.Provider
	notifier  notificationhandler.Provider
	mailer    email.Provider
}

var errSlipExists = apperrors.NewConflict("расчетный лист за этот месяц уже существует")

func (i impl) Create(actor accesspolicy.Actor, request salaryslipapimodels.SalarySlipCreate) (salaryslipapimodels.SalarySlipView, error) {
	logger := log.
		WithField("user_id", actor.ID).
		WithField("month", request.Month)
	if !accesspolicy.CanCreateSlip(actor) {
		return salaryslipapimodels.SalarySlipView{}, apperrors.NewForbidden("создавать расчетные листы может только администратор")
	}
	if err := request.Validate(); err != nil {
		return salaryslipapimodels.SalarySlipView{}, err
	}
	employee, err := i.resolveEmployee(logger, request.EmployeeID, request.EmployeeEmail)
	if err != nil {
		return salaryslipapimodels.SalarySlipView{}, err
	}
	logger = logger.WithField("employee_id", employee.ID)

	existing, err := i.slipStore.FindByEmployeeMonth(employee.ID, request.Month)
	if err != nil {
		logger.WithError(err).Error("ошибка проверки существующего расчетного листа")
		return salaryslipapimodels.SalarySlipView{}, apperrors.Persistence(err, "ошибка проверки существующего расчетного листа")
	}
	if existing != nil {
		return salaryslipapimodels.SalarySlipView{}, errSlipExists
	}

	rec := dbmodels.SalarySlip{
		EmployeeID:  employee.ID,
		Month:       request.Month,
		BasicSalary: *request.BasicSalary,
		Allowances:  valueOrZero(request.Allowances),
		Deductions:  valueOrZero(request.Deductions),
		Status:      models.SalarySlipStatusPublished,
	}
	rec.NetSalary = dbmodels.CalcNetSalary(rec.BasicSalary, rec.Allowances, rec.Deductions)
	if rec.NetSalary < 0 {
		return salaryslipapimodels.SalarySlipView{}, apperrors.NewValidation("удержания превышают сумму начислений")
	}
	var (
		created *dbmodels.SalarySlip
		view    notificationapimodels.NotificationView
	)
	err = i.db.Transaction(func(tx *gorm.DB) error {
		slipStore := salaryslipstore.NewInstance(tx)
		id, err := slipStore.Create(rec)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return errSlipExists
			}
			logger.WithError(err).Error("ошибка создания расчетного листа")
			return apperrors.Persistence(err, "ошибка создания расчетного листа")
		}
		created, err = load(logger, slipStore, id)
		if err != nil {
			return err
		}
		view, err = i.notifier.WithTx(tx).Notify(created.EmployeeID, models.NotificationSalarySlip,
			"New Salary Slip Available",
			fmt.Sprintf("Your salary slip for %s has been generated.", created.Month),
			slipLink(id))
		return err
	})
	if err != nil {
		return salaryslipapimodels.SalarySlipView{}, err
	}
	i.notifier.Push(created.EmployeeID, view)
	return created.ToModel(), nil
}

func (i impl) Update(actor accesspolicy.Actor, slipID string, request salaryslipapimodels.SalarySlipUpdate) (salaryslipapimodels.SalarySlipView, error) {
	logger := log.
		WithField("user_id", actor.ID).
		WithField("salary_slip_id", slipID)
	if !accesspolicy.CanUpdateSlip(actor) {
		return salaryslipapimodels.SalarySlipView{}, apperrors.NewForbidden("изменять расчетные листы может только администратор")
	}
	if err := request.Validate(); err != nil {
		return salaryslipapimodels.SalarySlipView{}, err
	}
	rec, err := load(logger, i.slipStore, slipID)
	if err != nil {
		return salaryslipapimodels.SalarySlipView{}, err
	}

	updMap := map[string]interface{}{}
	if request.Month != nil && *request.Month != rec.Month {
		existing, err := i.slipStore.FindByEmployeeMonth(rec.EmployeeID, *request.Month)
		if err != nil {
			logger.WithError(err).Error("ошибка проверки существующего расчетного листа")
			return salaryslipapimodels.SalarySlipView{}, apperrors.Persistence(err, "ошибка проверки существующего расчетного листа")
		}
		if existing != nil {
			return salaryslipapimodels.SalarySlipView{}, errSlipExists
		}
		rec.Month = *request.Month
		updMap["month"] = rec.Month
	}
	if request.BasicSalary != nil {
		rec.BasicSalary = *request.BasicSalary
		updMap["basic_salary"] = rec.BasicSalary
	}
	if request.Allowances != nil {
		rec.Allowances = *request.Allowances
		updMap["allowances"] = rec.Allowances
	}
	if request.Deductions != nil {
		rec.Deductions = *request.Deductions
		updMap["deductions"] = rec.Deductions
	}
	// итог пересчитывается всегда, даже если клиент прислал свое значение
	rec.NetSalary = dbmodels.CalcNetSalary(rec.BasicSalary, rec.Allowances, rec.Deductions)
	if rec.NetSalary < 0 {
		return salaryslipapimodels.SalarySlipView{}, apperrors.NewValidation("удержания превышают сумму начислений")
	}
	updMap["net_salary"] = rec.NetSalary

	var (
		updated *dbmodels.SalarySlip
		view    notificationapimodels.NotificationView
	)
	err = i.db.Transaction(func(tx *gorm.DB) error {
		slipStore := salaryslipstore.NewInstance(tx)
		if err := slipStore.Update(slipID, updMap); err != nil {
			if db.IsUniqueViolation(err) {
				return errSlipExists
			}
			logger.WithError(err).Error("ошибка обновления расчетного листа")
			return apperrors.Persistence(err, "ошибка обновления расчетного листа")
		}
		var err error
		updated, err = load(logger, slipStore, slipID)
		if err != nil {
			return err
		}
		view, err = i.notifier.WithTx(tx).Notify(updated.EmployeeID, models.NotificationSalarySlip,
			"Salary Slip Updated",
			fmt.Sprintf("Your salary slip for %s has been updated.", updated.Month),
			slipLink(slipID))
		return err
	})
	if err != nil {
		return salaryslipapimodels.SalarySlipView{}, err
	}
	i.notifier.Push(updated.EmployeeID, view)
	i.dispatchUpdate(actor, updated)
	return updated.ToModel(), nil
}

func (i impl) List(actor accesspolicy.Actor) ([]salaryslipapimodels.SalarySlipView, error) {
	list, err := i.slipStore.List(accesspolicy.OwnerFilter(actor))
	if err != nil {
		log.WithField("user_id", actor.ID).WithError(err).Error("ошибка получения списка расчетных листов")
		return nil, apperrors.Persistence(err, "ошибка получения списка расчетных листов")
	}
	result := make([]salaryslipapimodels.SalarySlipView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) Get(actor accesspolicy.Actor, slipID string) (salaryslipapimodels.SalarySlipView, error) {
	logger := log.
		WithField("user_id", actor.ID).
		WithField("salary_slip_id", slipID)
	rec, err := load(logger, i.slipStore, slipID)
	if err != nil {
		return salaryslipapimodels.SalarySlipView{}, err
	}
	if !accesspolicy.CanRead(actor, rec) {
		return salaryslipapimodels.SalarySlipView{}, apperrors.NewNotFound("расчетный лист не найден")
	}
	return rec.ToModel(), nil
}

func (i impl) resolveEmployee(logger *log.Entry, employeeID, employeeEmail string) (*dbmodels.User, error) {
	var (
		rec *dbmodels.User
		err error
	)
	if strings.TrimSpace(employeeID) != "" {
		rec, err = i.userStore.GetByID(strings.TrimSpace(employeeID))
		if rec != nil && rec.Role != models.EmployeeRole {
			rec = nil
		}
	} else {
		rec, err = i.userStore.FindByEmailAndRole(employeeEmail, models.EmployeeRole)
	}
	if err != nil {
		logger.WithError(err).Error("ошибка поиска сотрудника")
		return nil, apperrors.Persistence(err, "ошибка поиска сотрудника")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("сотрудник не найден")
	}
	return rec, nil
}

func load(logger *log.Entry, slipStore salaryslipstore.Provider, slipID string) (*dbmodels.SalarySlip, error) {
	rec, err := slipStore.GetByID(slipID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения расчетного листа")
		return nil, apperrors.Persistence(err, "ошибка получения расчетного листа")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("расчетный лист не найден")
	}
	return rec, nil
}

// dispatchUpdate автор изменений берется из токена
func (i impl) dispatchUpdate(actor accesspolicy.Actor, rec *dbmodels.SalarySlip) {
	if i.mailer == nil {
		return
	}
	name, emailAddr := "", ""
	if rec.Employee != nil {
		name, emailAddr = rec.Employee.Name, rec.Employee.Email
	}
	details := fmt.Sprintf("Salary slip for %s (%s) for month %s has been updated.", name, emailAddr, rec.Month)
	i.mailer.Dispatch(email.UpdateNotification(email.UpdateTypeSalarySlipUpdate, actor.Name, actor.Email, details))
}

func valueOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func slipLink(id string) string {
	return "/salary-slips/" + id
}
