package expensehandler

import (
	"fmt"
	"payroll-backend/db"
	accesspolicy "payroll-backend/lib/access"
	"payroll-backend/lib/email"
	expensestore "payroll-backend/lib/expense/store"
	filestorage "payroll-backend/lib/file-storage"
	notificationhandler "payroll-backend/lib/notification"
	usersstore "payroll-backend/lib/users/store"
	apperrors "payroll-backend/lib/utils/app-errors"
	"payroll-backend/models"
	expenseapimodels "payroll-backend/models/api/expense"
	notificationapimodels "payroll-backend/models/api/notification"
	dbmodels "payroll-backend/models/db"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Submit(actor accesspolicy.Actor, request expenseapimodels.ExpenseData) (expenseapimodels.ExpenseView, error)
	Approve(actor accesspolicy.Actor, expenseID string) (expenseapimodels.ExpenseView, error)
	Reject(actor accesspolicy.Actor, expenseID, reason string) (expenseapimodels.ExpenseView, error)
	List(actor accesspolicy.Actor) ([]expenseapimodels.ExpenseView, error)
	Get(actor accesspolicy.Actor, expenseID string) (expenseapimodels.ExpenseView, error)
	// ReceiptKey ключ загруженного чека, NotFound если чек не загружался
	ReceiptKey(actor accesspolicy.Actor, expenseID string) (string, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, notificationhandler.Instance, email.Instance)
}

func NewInstance(DB *gorm.DB, notifier notificationhandler.Provider, mailer email.Provider) Provider {
	return impl{
		db:           DB,
		expenseStore: expensestore.NewInstance(DB),
		notifier:     notifier,
		mailer:       mailer,
		now:          time.Now,
	}
}

type impl struct {
	db           *gorm.DB
	expenseStore expensestore.Provider
	notifier     notificationhandler.Provider
	mailer       email.Provider
	now          func() time.Time
}

func (i impl) getLogger(actor accesspolicy.Actor, expenseID string) *log.Entry {
	logger := log.WithField("user_id", actor.ID)
	if expenseID != "" {
		logger = logger.WithField("expense_id", expenseID)
	}
	return logger
}

func (i impl) Submit(actor accesspolicy.Actor, request expenseapimodels.ExpenseData) (expenseapimodels.ExpenseView, error) {
	logger := i.getLogger(actor, "")
	if !accesspolicy.CanSubmitExpense(actor) {
		return expenseapimodels.ExpenseView{}, apperrors.NewForbidden("подавать заявки на расходы может только сотрудник")
	}
	if err := request.Validate(); err != nil {
		return expenseapimodels.ExpenseView{}, err
	}
	receipt := strings.TrimSpace(request.Receipt)
	if filestorage.IsReceiptKey(receipt) && !filestorage.IsReceiptOwner(receipt, actor.ID) {
		return expenseapimodels.ExpenseView{}, apperrors.NewValidation("чек загружен другим пользователем")
	}
	rec := dbmodels.Expense{
		EmployeeID:  actor.ID,
		Month:       request.Month,
		Category:    request.Category,
		Description: strings.TrimSpace(request.Description),
		Amount:      *request.Amount,
		Receipt:     receipt,
		Status:      models.ExpenseStatusPending,
	}
	var (
		created *dbmodels.Expense
		pushed  []pendingPush
	)
	// заявка и уведомления администраторам пишутся вместе или не пишутся совсем
	err := i.db.Transaction(func(tx *gorm.DB) error {
		expenseStore := expensestore.NewInstance(tx)
		notifier := i.notifier.WithTx(tx)
		id, err := expenseStore.Create(rec)
		if err != nil {
			logger.WithError(err).Error("ошибка создания заявки на расходы")
			return apperrors.Persistence(err, "ошибка создания заявки на расходы")
		}
		created, err = load(logger, expenseStore, id)
		if err != nil {
			return err
		}

		admins, err := usersstore.NewInstance(tx).ListByRole(models.AdminRole)
		if err != nil {
			logger.WithError(err).Error("ошибка получения списка администраторов")
			return apperrors.Persistence(err, "ошибка получения списка администраторов")
		}
		employeeName := ""
		if created.Employee != nil {
			employeeName = created.Employee.Name
		}
		for _, admin := range admins {
			view, err := notifier.Notify(admin.ID, models.NotificationExpenseSubmitted,
				"New Expense Submitted",
				fmt.Sprintf("%s submitted an expense of $%s for %s", employeeName, formatAmount(created.Amount), created.Month),
				expenseLink(id))
			if err != nil {
				return err
			}
			pushed = append(pushed, pendingPush{userID: admin.ID, view: view})
		}
		return nil
	})
	if err != nil {
		return expenseapimodels.ExpenseView{}, err
	}
	for _, item := range pushed {
		i.notifier.Push(item.userID, item.view)
	}
	return created.ToModel(), nil
}

func (i impl) Approve(actor accesspolicy.Actor, expenseID string) (expenseapimodels.ExpenseView, error) {
	return i.transition(actor, expenseID, accesspolicy.ActionApprove, "")
}

func (i impl) Reject(actor accesspolicy.Actor, expenseID, reason string) (expenseapimodels.ExpenseView, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = models.DefaultRejectionReason
	}
	return i.transition(actor, expenseID, accesspolicy.ActionReject, reason)
}

func (i impl) transition(actor accesspolicy.Actor, expenseID string, action accesspolicy.Action, reason string) (expenseapimodels.ExpenseView, error) {
	logger := i.getLogger(actor, expenseID).WithField("action", action)
	rec, err := i.expenseStore.GetByID(expenseID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения заявки на расходы")
		return expenseapimodels.ExpenseView{}, apperrors.Persistence(err, "ошибка получения заявки на расходы")
	}
	if rec == nil {
		return expenseapimodels.ExpenseView{}, apperrors.NewNotFound("заявка на расходы не найдена")
	}
	if !accesspolicy.CanTransition(actor, *rec, action) {
		return expenseapimodels.ExpenseView{}, apperrors.NewForbidden("рассматривать заявки может только администратор")
	}
	if !rec.Status.AllowReview() {
		return expenseapimodels.ExpenseView{}, apperrors.NewInvalidState("заявка уже рассмотрена, текущий статус: %v", rec.Status.ToHuman())
	}

	updMap := map[string]interface{}{
		"reviewed_by_id": actor.ID,
		"reviewed_at":    i.now(),
	}
	notificationType := models.NotificationExpenseApproved
	updateType := email.UpdateTypeExpenseApproval
	if action == accesspolicy.ActionReject {
		updMap["status"] = models.ExpenseStatusRejected
		updMap["rejection_reason"] = reason
		notificationType = models.NotificationExpenseRejected
		updateType = email.UpdateTypeExpenseRejection
	} else {
		updMap["status"] = models.ExpenseStatusApproved
	}

	var (
		result *dbmodels.Expense
		view   notificationapimodels.NotificationView
	)
	// смена статуса и уведомление сотрудника фиксируются одной транзакцией
	err = i.db.Transaction(func(tx *gorm.DB) error {
		expenseStore := expensestore.NewInstance(tx)
		updated, err := expenseStore.Transition(expenseID, models.ExpenseStatusPending, updMap)
		if err != nil {
			logger.WithError(err).Error("ошибка обновления статуса заявки на расходы")
			return apperrors.Persistence(err, "ошибка обновления статуса заявки на расходы")
		}
		if !updated {
			// заявку успели рассмотреть между чтением и записью
			current, err := load(logger, expenseStore, expenseID)
			if err != nil {
				return err
			}
			return apperrors.NewInvalidState("заявка уже рассмотрена, текущий статус: %v", current.Status.ToHuman())
		}
		result, err = load(logger, expenseStore, expenseID)
		if err != nil {
			return err
		}
		title, message := transitionText(result)
		view, err = i.notifier.WithTx(tx).Notify(result.EmployeeID, notificationType, title, message, expenseLink(expenseID))
		return err
	})
	if err != nil {
		return expenseapimodels.ExpenseView{}, err
	}
	i.notifier.Push(result.EmployeeID, view)
	i.dispatchUpdate(actor, result, updateType)
	return result.ToModel(), nil
}

func (i impl) List(actor accesspolicy.Actor) ([]expenseapimodels.ExpenseView, error) {
	list, err := i.expenseStore.List(accesspolicy.OwnerFilter(actor))
	if err != nil {
		i.getLogger(actor, "").WithError(err).Error("ошибка получения списка заявок на расходы")
		return nil, apperrors.Persistence(err, "ошибка получения списка заявок на расходы")
	}
	result := make([]expenseapimodels.ExpenseView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) Get(actor accesspolicy.Actor, expenseID string) (expenseapimodels.ExpenseView, error) {
	rec, err := i.getVisible(actor, expenseID)
	if err != nil {
		return expenseapimodels.ExpenseView{}, err
	}
	return rec.ToModel(), nil
}

func (i impl) ReceiptKey(actor accesspolicy.Actor, expenseID string) (string, error) {
	rec, err := i.getVisible(actor, expenseID)
	if err != nil {
		return "", err
	}
	if !filestorage.IsReceiptKey(rec.Receipt) {
		return "", apperrors.NewNotFound("чек не загружен")
	}
	return rec.Receipt, nil
}

func (i impl) getVisible(actor accesspolicy.Actor, expenseID string) (*dbmodels.Expense, error) {
	rec, err := i.expenseStore.GetByID(expenseID)
	if err != nil {
		i.getLogger(actor, expenseID).WithError(err).Error("ошибка получения заявки на расходы")
		return nil, apperrors.Persistence(err, "ошибка получения заявки на расходы")
	}
	// чужая заявка для сотрудника выглядит как отсутствующая
	if rec == nil || !accesspolicy.CanRead(actor, rec) {
		return nil, apperrors.NewNotFound("заявка на расходы не найдена")
	}
	return rec, nil
}

type pendingPush struct {
	userID string
	view   notificationapimodels.NotificationView
}

func load(logger *log.Entry, expenseStore expensestore.Provider, expenseID string) (*dbmodels.Expense, error) {
	rec, err := expenseStore.GetByID(expenseID)
	if err != nil {
		logger.WithError(err).Error("ошибка получения заявки на расходы")
		return nil, apperrors.Persistence(err, "ошибка получения заявки на расходы")
	}
	if rec == nil {
		return nil, apperrors.NewNotFound("заявка на расходы не найдена")
	}
	return rec, nil
}

// dispatchUpdate данные проверяющего берутся из уже загруженной заявки
func (i impl) dispatchUpdate(actor accesspolicy.Actor, rec *dbmodels.Expense, updateType string) {
	if i.mailer == nil {
		return
	}
	name, emailAddr := actor.Name, actor.Email
	if rec.ReviewedBy != nil {
		name, emailAddr = rec.ReviewedBy.Name, rec.ReviewedBy.Email
	}
	i.mailer.Dispatch(email.UpdateNotification(updateType, name, emailAddr, transitionDetails(rec)))
}

func transitionText(rec *dbmodels.Expense) (title, message string) {
	amount := formatAmount(rec.Amount)
	if rec.Status == models.ExpenseStatusRejected {
		return "Expense Rejected", fmt.Sprintf("Your expense of $%s for %s has been rejected. Reason: %s", amount, rec.Month, rec.RejectionReason)
	}
	return "Expense Approved", fmt.Sprintf("Your expense of $%s for %s has been approved.", amount, rec.Month)
}

func transitionDetails(rec *dbmodels.Expense) string {
	name, emailAddr := "", ""
	if rec.Employee != nil {
		name, emailAddr = rec.Employee.Name, rec.Employee.Email
	}
	details := fmt.Sprintf("Expense of $%s for %s submitted by %s (%s) has been %s.",
		formatAmount(rec.Amount), rec.Month, name, emailAddr, rec.Status)
	if rec.Status == models.ExpenseStatusRejected {
		details = fmt.Sprintf("%s Reason: %s", details, rec.RejectionReason)
	}
	return details
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func expenseLink(id string) string {
	return "/expenses/" + id
}
