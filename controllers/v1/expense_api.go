package apiv1

import (
	"fmt"
	"payroll-backend/controllers"
	expensehandler "payroll-backend/lib/expense"
	xlsexport "payroll-backend/lib/export/xls"
	filestorage "payroll-backend/lib/file-storage"
	"payroll-backend/middleware"
	apimodels "payroll-backend/models/api"
	expenseapimodels "payroll-backend/models/api/expense"
	"time"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type expenseApiController struct {
	controllers.BaseAPIController
}

func InitExpenseApiRouters(app fiber.Router) {
	controller := expenseApiController{}
	app.Route("expense", func(router fiber.Router) {
		router.Post("", controller.submit)
		router.Get("", controller.list)
		router.Get("export", middleware.AdminRoleRequired(), controller.export)
		router.Post("receipt", middleware.EmployeeRoleRequired(), controller.uploadReceipt)
		router.Get(":id", controller.get)
		router.Get(":id/receipt", controller.receipt)
		router.Put(":id/approve", middleware.AdminRoleRequired(), controller.approve)
		router.Put(":id/reject", middleware.AdminRoleRequired(), controller.reject)
	})
}

// @Summary Подать расход
// @Tags Расходы
// @Description Подать расход на возмещение, создается в статусе pending
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 expenseapimodels.ExpenseData	true	"request body"
// @Success 200 {object} apimodels.Response{data=expenseapimodels.ExpenseView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/expense [post]
func (c *expenseApiController) submit(ctx *fiber.Ctx) error {
	var payload expenseapimodels.ExpenseData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := expensehandler.Instance.Submit(middleware.GetActor(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания расхода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список расходов
// @Tags Расходы
// @Description Список расходов: администратору все, сотруднику только свои
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]expenseapimodels.ExpenseView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/expense [get]
func (c *expenseApiController) list(ctx *fiber.Ctx) error {
	list, err := expensehandler.Instance.List(middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка расходов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Выгрузка расходов в xlsx
// @Tags Расходы
// @Description Выгрузка всех расходов в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/expense/export [get]
func (c *expenseApiController) export(ctx *fiber.Ctx) error {
	list, err := expensehandler.Instance.List(middleware.GetActor(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка расходов")
	}
	buf, err := xlsexport.Instance.ExportExpenses(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования файла")
	}
	ctx.Set(fiber.HeaderContentType, xlsxContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=expenses-%s.xlsx", time.Now().Format("2006-01-02")))
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Загрузить чек
// @Tags Расходы
// @Description Загрузить файл чека, возвращает ключ для поля receipt
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   file formData file true "Файл чека"
// @Success 200 {object} apimodels.Response{data=expenseapimodels.ReceiptView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/expense/receipt [post]
func (c *expenseApiController) uploadReceipt(ctx *fiber.Ctx) error {
	if filestorage.Instance == nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("файловое хранилище не настроено"))
	}
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось получить файл из запроса"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не удалось прочитать файл"))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	key, err := filestorage.Instance.UploadReceipt(ctx.UserContext(), middleware.GetUserID(ctx), fileHeader.Filename, contentType, file, fileHeader.Size)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка загрузки чека")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(expenseapimodels.ReceiptView{Receipt: key}))
}

// @Summary Получить расход
// @Tags Расходы
// @Description Получить расход по ID
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true    	"expense ID"
// @Success 200 {object} apimodels.Response{data=expenseapimodels.ExpenseView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/expense/{id} [get]
func (c *expenseApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := expensehandler.Instance.Get(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения расхода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Скачать чек
// @Tags Расходы
// @Description Скачать загруженный чек расхода
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true    	"expense ID"
// @Success 200 {file} file
// @Failure 404 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/expense/{id}/receipt [get]
func (c *expenseApiController) receipt(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	key, err := expensehandler.Instance.ReceiptKey(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения чека")
	}
	if filestorage.Instance == nil {
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("файловое хранилище не настроено"))
	}
	body, contentType, err := filestorage.Instance.GetReceipt(ctx.UserContext(), key)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения чека")
	}
	if contentType != "" {
		ctx.Set(fiber.HeaderContentType, contentType)
	}
	return ctx.Status(fiber.StatusOK).Send(body)
}

// @Summary Одобрить расход
// @Tags Расходы
// @Description Одобрить расход в статусе pending
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true    	"expense ID"
// @Success 200 {object} apimodels.Response{data=expenseapimodels.ExpenseView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/expense/{id}/approve [put]
func (c *expenseApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := expensehandler.Instance.Approve(middleware.GetActor(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка одобрения расхода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Отклонить расход
// @Tags Расходы
// @Description Отклонить расход в статусе pending
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string  				true    	"expense ID"
// @Param	body body	 expenseapimodels.RejectRequest	false	"request body"
// @Success 200 {object} apimodels.Response{data=expenseapimodels.ExpenseView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/expense/{id}/reject [put]
func (c *expenseApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload expenseapimodels.RejectRequest
	if len(ctx.Body()) != 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	resp, err := expensehandler.Instance.Reject(middleware.GetActor(ctx), id, payload.RejectionReason)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения расхода")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
