package notificationhandler

import (
	"payroll-backend/db"
	accesspolicy "payroll-backend/lib/access"
	notificationstore "payroll-backend/lib/notification/store"
	apperrors "payroll-backend/lib/utils/app-errors"
	connectionhub "payroll-backend/lib/ws/hub/connection-hub"
	"payroll-backend/models"
	notificationapimodels "payroll-backend/models/api/notification"
	dbmodels "payroll-backend/models/db"
	wsmodels "payroll-backend/models/ws"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Notify(userID string, notificationType models.NotificationType, title, message, link string) (notificationapimodels.NotificationView, error)
	List(userID string) ([]notificationapimodels.NotificationView, error)
	MarkRead(id, userID string) error
	MarkAllRead(userID string) error
	UnreadCount(userID string) (int64, error)
	// WithTx уведомления пишутся в транзакции tx и не отправляются в ws,
	// после фиксации транзакции вызывающий отправляет их через Push
	WithTx(tx *gorm.DB) Provider
	Push(userID string, view notificationapimodels.NotificationView)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(notificationstore.NewInstance(db.DB), connectionhub.Instance)
}

// NewInstance hub может быть nil, тогда уведомления только сохраняются
func NewInstance(store notificationstore.Provider, hub connectionhub.Provider) Provider {
	return impl{
		store: store,
		hub:   hub,
	}
}

type impl struct {
	store notificationstore.Provider
	hub   connectionhub.Provider
}

func (i impl) Notify(userID string, notificationType models.NotificationType, title, message, link string) (notificationapimodels.NotificationView, error) {
	logger := log.
		WithField("user_id", userID).
		WithField("notification_type", notificationType)
	if userID == "" {
		return notificationapimodels.NotificationView{}, apperrors.NewValidation("не указан получатель уведомления")
	}
	if !notificationType.IsValid() {
		return notificationapimodels.NotificationView{}, apperrors.NewValidation("неизвестный тип уведомления: %v", notificationType)
	}
	rec := dbmodels.Notification{
		UserID:  userID,
		Type:    notificationType,
		Title:   title,
		Message: message,
		Link:    link,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания уведомления")
		return notificationapimodels.NotificationView{}, apperrors.Persistence(err, "ошибка создания уведомления")
	}
	created, err := i.store.GetByID(id)
	if err != nil || created == nil {
		logger.WithError(err).Warn("не удалось перечитать созданное уведомление")
		rec.ID = id
		created = &rec
	}
	view := created.ToModel()
	i.Push(userID, view)
	return view, nil
}

func (i impl) WithTx(tx *gorm.DB) Provider {
	return impl{
		store: notificationstore.NewInstance(tx),
	}
}

func (i impl) Push(userID string, view notificationapimodels.NotificationView) {
	if i.hub == nil {
		return
	}
	if !i.hub.IsConnected(userID) {
		return
	}
	msg := wsmodels.ServerMessage{
		ToUserID: userID,
		Time:     view.CreatedAt.Format("02.01.2006 15:04:05"),
		Code:     connectionhub.CodeNotification,
		Msg:      view.Title,
		Data:     view,
	}
	if !i.hub.SendMessage(msg) {
		log.WithField("user_id", userID).Warn("уведомление не доставлено через ws")
	}
}

func (i impl) List(userID string) ([]notificationapimodels.NotificationView, error) {
	list, err := i.store.List(userID, models.NotificationListLimit)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("ошибка получения списка уведомлений")
		return nil, apperrors.Persistence(err, "ошибка получения списка уведомлений")
	}
	result := make([]notificationapimodels.NotificationView, 0, len(list))
	for _, rec := range list {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) MarkRead(id, userID string) error {
	logger := log.
		WithField("notification_id", id).
		WithField("user_id", userID)
	rec, err := i.store.GetByID(id)
	if err != nil {
		logger.WithError(err).Error("ошибка получения уведомления")
		return apperrors.Persistence(err, "ошибка получения уведомления")
	}
	if rec == nil || !accesspolicy.CanRead(accesspolicy.Actor{ID: userID}, rec) {
		return apperrors.NewNotFound("уведомление не найдено")
	}
	if rec.Read {
		return nil
	}
	if err = i.store.MarkRead(id); err != nil {
		logger.WithError(err).Error("ошибка отметки уведомления прочитанным")
		return apperrors.Persistence(err, "ошибка отметки уведомления прочитанным")
	}
	return nil
}

func (i impl) MarkAllRead(userID string) error {
	if err := i.store.MarkAllRead(userID); err != nil {
		log.WithField("user_id", userID).WithError(err).Error("ошибка отметки всех уведомлений прочитанными")
		return apperrors.Persistence(err, "ошибка отметки всех уведомлений прочитанными")
	}
	return nil
}

func (i impl) UnreadCount(userID string) (int64, error) {
	count, err := i.store.UnreadCount(userID)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("ошибка подсчета непрочитанных уведомлений")
		return 0, apperrors.Persistence(err, "ошибка подсчета непрочитанных уведомлений")
	}
	return count, nil
}
