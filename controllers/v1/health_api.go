package apiv1

import (
	"payroll-backend/db"
	apimodels "payroll-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func InitHealthApiRouters(app fiber.Router) {
	app.Get("health", health)
}

// @Summary Проверка работоспособности
// @Tags Сервис
// @Description Проверка работоспособности сервиса и доступности БД
// @Success 200 {object} apimodels.Response
// @Failure 503 {object} apimodels.Response
// @router /api/v1/health [get]
func health(ctx *fiber.Ctx) error {
	if db.DB != nil {
		if err := db.PingDB(); err != nil {
			log.WithError(err).Error("БД недоступна")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("БД недоступна"))
		}
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewMessage("Server is running", nil))
}
