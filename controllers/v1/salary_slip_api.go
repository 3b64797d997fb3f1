package apiv1

import (
	"fmt"
	"payroll-backend/controllers"
	pdfexport "payroll-backend/lib/export/pdf"
	salarysliphandler "payroll-backend/lib/salary-slip"
	"payroll-backend/middleware"
	apimodels "payroll-backend/models/api"
	salaryslipapimodels "payroll-backend/models/api/salary-slip"

	"github.com/gofiber/fiber/v2"
)

type salarySlipApiController struct {
	controllers.BaseAPIController
}

func InitSalarySlipApiRouters(app fiber.Router) {
	controller := salarySlipApiController{}
	app.Route("salary-slip", func(router fiber.Router) {
		router.Post("", middleware.AdminRoleRequired(), controller.create)
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Get(":id/pdf", controller.pdf)
		router.Put(":id", middleware.AdminRoleRequired(), controller.update)
	})
}

// @Summary Создать расчетный лист
// @Tags Расчетные листы
// @Description Создать расчетный лист сотрудника за месяц, итог считается на сервере
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 salaryslipapimodels.SalarySlipCreate	true	"request body"
// @Success 200 {object} apimodels.Response{data=salaryslipapimodels.SalarySlipView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/salary-slip [post]
func (c *salarySlipApiController) create(ctx *fiber.Ctx) error {
	var payload salaryslipapimodels.SalarySlipCreate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := salarysliphandler.Instance.Create(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания расчетного листа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Обновить расчетный лист
// @Tags Расчетные листы
// @Description Обновить расчетный лист, итог пересчитывается
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true    	"salary slip ID"
// @Param	body body	 salaryslipapimodels.SalarySlipUpdate	true	"request body"
// @Success 200 {object} apimodels.Response{data=salaryslipapimodels.SalarySlipView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/salary-slip/{id} [put]
func (c *salarySlipApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload salaryslipapimodels.SalarySlipUpdate
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := salarysliphandler.Instance.Update(middleware.GetActor(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления расчетного листа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список расчетных листов
// @Tags Расчетные листы
// @Description Список расчетных листов: администратору все, сотруднику только свои
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]salaryslipapimodels.SalarySlipView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/salary-slip [get]
func (c *salarySlipApiController) list(ctx *fiber.Ctx) error {
	list, err := salarysliphandler.Instance.List(middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка расчетных листов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получить расчетный лист
// @Tags Расчетные листы
// @Description Получить расчетный лист по ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true    	"salary slip ID"
// @Success 200 {object} apimodels.Response{data=salaryslipapimodels.SalarySlipView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/salary-slip/{id} [get]
func (c *salarySlipApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := salarysliphandler.Instance.Get(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения расчетного листа")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Расчетный лист в pdf
// @Tags Расчетные листы
// @Description Скачать расчетный лист в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true    	"salary slip ID"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/salary-slip/{id}/pdf [get]
func (c *salarySlipApiController) pdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	slip, err := salarysliphandler.Instance.Get(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения расчетного листа")
	}
	body, err := pdfexport.GenerateSalarySlip(slip)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования pdf")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", pdfexport.FileName(slip.Month)))
	return ctx.Status(fiber.StatusOK).Send(body)
}
