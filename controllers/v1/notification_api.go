package apiv1

import (
	"payroll-backend/controllers"
	notificationhandler "payroll-backend/lib/notification"
	"payroll-backend/middleware"
	apimodels "payroll-backend/models/api"
	notificationapimodels "payroll-backend/models/api/notification"

	"github.com/gofiber/fiber/v2"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app fiber.Router) {
	controller := notificationApiController{}
	app.Route("notification", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("unread-count", controller.unreadCount)
		router.Put("read-all", controller.markAllRead)
		router.Put(":id/read", controller.markRead)
	})
}

// @Summary Список уведомлений
// @Tags Уведомления
// @Description Последние уведомления пользователя, новые первыми
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]notificationapimodels.NotificationView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification [get]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	list, err := notificationhandler.Instance.List(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Количество непрочитанных
// @Tags Уведомления
// @Description Количество непрочитанных уведомлений
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.UnreadCount}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/unread-count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := notificationhandler.Instance.UnreadCount(middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения количества уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(notificationapimodels.UnreadCount{UnreadCount: count}))
}

// @Summary Прочитать уведомление
// @Tags Уведомления
// @Description Отметить уведомление прочитанным
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true    	"notification ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/{id}/read [put]
func (c *notificationApiController) markRead(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = notificationhandler.Instance.MarkRead(id, middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления уведомления")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("Notification marked as read", nil))
}

// @Summary Прочитать все уведомления
// @Tags Уведомления
// @Description Отметить все уведомления прочитанными
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notification/read-all [put]
func (c *notificationApiController) markAllRead(ctx *fiber.Ctx) error {
	if err := notificationhandler.Instance.MarkAllRead(middleware.GetUserID(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления уведомлений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("All notifications marked as read", nil))
}
