package apiv1

import (
	"payroll-backend/controllers"
	usershandler "payroll-backend/lib/users"
	"payroll-backend/middleware"
	apimodels "payroll-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type usersApiController struct {
	controllers.BaseAPIController
}

func InitUsersApiRouters(app fiber.Router) {
	controller := usersApiController{}
	app.Route("users", func(router fiber.Router) {
		router.Get("employees", middleware.AdminRoleRequired(), controller.employees)
	})
}

// @Summary Список сотрудников
// @Tags Пользователи
// @Description Список сотрудников для выпуска расчетных листов
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]usersapimodels.UserShortView}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/users/employees [get]
func (c *usersApiController) employees(ctx *fiber.Ctx) error {
	list, err := usershandler.Instance.ListEmployees()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка сотрудников")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
