package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"payroll-backend/config"
	authutils "payroll-backend/lib/utils/auth-utils"
	"payroll-backend/models"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func setupConfig(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	t.Cleanup(func() { config.Conf = nil })
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(AuthorizationRequired())
	app.Get("/whoami", func(ctx *fiber.Ctx) error {
		actor := GetActor(ctx)
		return ctx.SendString(actor.ID + ":" + string(actor.Role) + ":" + actor.Name + ":" + actor.Email)
	})
	app.Get("/admin", AdminRoleRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	app.Get("/employee", EmployeeRoleRequired(), func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	return app
}

func TestAuthorization(t *testing.T) {
	setupConfig(t)
	app := newApp()
	token, err := authutils.GetToken("emp-1", "John", "john@example.com", models.EmployeeRole)
	require.Nil(t, err)

	t.Run(`missing token check`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/whoami", nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run(`header token check`, func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		require.Equal(t, "emp-1:employee:John:john@example.com", string(body))
	})

	t.Run(`header token without scheme check`, func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run(`lowercase scheme check`, func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "bearer "+token)
		resp, err := app.Test(req)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`query token check`, func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/whoami?token="+token, nil))
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run(`role check`, func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		req = httptest.NewRequest(fiber.MethodGet, "/employee", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err = app.Test(req)
		require.Nil(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestErrNotify(t *testing.T) {
	received := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- string(body)
	}))
	defer srv.Close()

	app := fiber.New()
	app.Use(ErrNotify(srv.URL))
	app.Get("/fail", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "db down"})
	})
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil))
	require.Nil(t, err)
	_, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/fail", nil))
	require.Nil(t, err)

	select {
	case body := <-received:
		require.Contains(t, body, `"code":500`)
		require.Contains(t, body, `"error":"db down"`)
		require.Contains(t, body, `"path":"/fail"`)
	case <-time.After(3 * time.Second):
		t.Fatal("уведомление об ошибке не получено")
	}
}
