package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"payroll-backend/config"
	apiv1 "payroll-backend/controllers/v1"
	"payroll-backend/fiberlog"
	"payroll-backend/initializers"
	"payroll-backend/lib/email"
	"payroll-backend/lib/ws"
	"payroll-backend/middleware"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
)

func main() {
	initializers.InitAllServices()

	app := fiber.New(fiber.Config{
		BodyLimit: config.Conf.App.BodyLimitMB * 1024 * 1024,
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowOrigins: config.Conf.App.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyAddr))
	apiv1.InitHealthApiRouters(apiV1)
	apiv1.InitAuthApiRouters(apiV1)

	//требуют авторизации, токен для ws передается в query
	private := apiV1.Group("", middleware.AuthorizationRequired())
	apiv1.InitUsersApiRouters(private)
	apiv1.InitExpenseApiRouters(private)
	apiv1.InitSalarySlipApiRouters(private)
	apiv1.InitNotificationApiRouters(private)
	ws.InitWs(private.Group("ws"))

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = <-c
		log.Info("Gracefully shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		email.Instance.Stop(ctx)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
