package apiv1

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"payroll-backend/config"
	"payroll-backend/db/dbtest"
	authhandler "payroll-backend/lib/auth"
	"payroll-backend/lib/email"
	expensehandler "payroll-backend/lib/expense"
	xlsexport "payroll-backend/lib/export/xls"
	notificationhandler "payroll-backend/lib/notification"
	notificationstore "payroll-backend/lib/notification/store"
	salarysliphandler "payroll-backend/lib/salary-slip"
	usershandler "payroll-backend/lib/users"
	usersstore "payroll-backend/lib/users/store"
	"payroll-backend/middleware"
	authapimodels "payroll-backend/models/api/auth"
	expenseapimodels "payroll-backend/models/api/expense"
	notificationapimodels "payroll-backend/models/api/notification"
	salaryslipapimodels "payroll-backend/models/api/salary-slip"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type nopMailer struct{}

func (nopMailer) Dispatch(msg email.Message) {}

func (nopMailer) Stop(ctx context.Context) {}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestApp(t *testing.T) *fiber.App {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	t.Cleanup(func() { config.Conf = nil })

	conn := dbtest.New(t)
	mailer := nopMailer{}
	usershandler.Instance = usershandler.NewInstance(conn)
	authhandler.Instance = authhandler.NewInstance(usershandler.Instance, usersstore.NewInstance(conn), mailer)
	notificationhandler.Instance = notificationhandler.NewInstance(notificationstore.NewInstance(conn), nil)
	expensehandler.Instance = expensehandler.NewInstance(conn, notificationhandler.Instance, mailer)
	salarysliphandler.Instance = salarysliphandler.NewInstance(conn, notificationhandler.Instance, mailer)
	xlsexport.NewHandler()

	app := fiber.New()
	InitHealthApiRouters(app)
	InitAuthApiRouters(app)
	private := app.Group("", middleware.AuthorizationRequired())
	InitUsersApiRouters(private)
	InitExpenseApiRouters(private)
	InitSalarySlipApiRouters(private)
	InitNotificationApiRouters(private)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.Nil(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.Nil(t, err)
	defer resp.Body.Close()
	var result envelope
	raw, err := io.ReadAll(resp.Body)
	require.Nil(t, err)
	if len(raw) != 0 && strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		require.Nil(t, json.Unmarshal(raw, &result))
	}
	return resp.StatusCode, result
}

func signup(t *testing.T, app *fiber.App, request authapimodels.SignupRequest) string {
	t.Helper()
	status, resp := doRequest(t, app, http.MethodPost, "/auth/signup", "", request)
	require.Equal(t, http.StatusOK, status, resp.Message)
	var jwtResp authapimodels.JWTResponse
	require.Nil(t, json.Unmarshal(resp.Data, &jwtResp))
	require.NotEmpty(t, jwtResp.Token)
	return jwtResp.Token
}

func TestAuthApi(t *testing.T) {
	app := newTestApp(t)

	t.Run(`health`, func(t *testing.T) {
		status, resp := doRequest(t, app, http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "success", resp.Status)
	})
	t.Run(`single admin`, func(t *testing.T) {
		signup(t, app, authapimodels.SignupRequest{Name: "Admin", Email: "admin@example.com", Password: "secret1", Role: "admin"})
		status, resp := doRequest(t, app, http.MethodPost, "/auth/signup", "",
			authapimodels.SignupRequest{Name: "Admin 2", Email: "admin2@example.com", Password: "secret1", Role: "admin"})
		require.Equal(t, http.StatusConflict, status)
		require.Equal(t, "fail", resp.Status)
	})
	t.Run(`signup validation`, func(t *testing.T) {
		status, _ := doRequest(t, app, http.MethodPost, "/auth/signup", "",
			authapimodels.SignupRequest{Name: "John", Email: "john@example.com", Password: "123"})
		require.Equal(t, http.StatusBadRequest, status)
	})
	t.Run(`login`, func(t *testing.T) {
		status, resp := doRequest(t, app, http.MethodPost, "/auth/login", "",
			authapimodels.LoginRequest{Email: "ADMIN@example.com", Password: "secret1"})
		require.Equal(t, http.StatusOK, status, resp.Message)

		status, _ = doRequest(t, app, http.MethodPost, "/auth/login", "",
			authapimodels.LoginRequest{Email: "admin@example.com", Password: "wrong-password"})
		require.Equal(t, http.StatusUnauthorized, status)
	})
	t.Run(`private routes require token`, func(t *testing.T) {
		status, _ := doRequest(t, app, http.MethodGet, "/expense", "", nil)
		require.Equal(t, http.StatusUnauthorized, status)
		status, _ = doRequest(t, app, http.MethodGet, "/auth/me", "bad-token", nil)
		require.Equal(t, http.StatusUnauthorized, status)
	})
}

func TestExpenseApi(t *testing.T) {
	app := newTestApp(t)
	adminToken := signup(t, app, authapimodels.SignupRequest{Name: "Admin", Email: "admin@example.com", Password: "secret1", Role: "admin"})
	employeeToken := signup(t, app, authapimodels.SignupRequest{Name: "John Doe", Email: "john@example.com", Password: "secret1"})

	amount := 120.5
	status, resp := doRequest(t, app, http.MethodPost, "/expense", employeeToken, expenseapimodels.ExpenseData{
		Month:       "2025-01",
		Category:    "travel",
		Description: "Taxi",
		Amount:      &amount,
	})
	require.Equal(t, http.StatusOK, status, resp.Message)
	var expense expenseapimodels.ExpenseView
	require.Nil(t, json.Unmarshal(resp.Data, &expense))
	require.Equal(t, "pending", string(expense.Status))

	t.Run(`employee cannot approve`, func(t *testing.T) {
		status, _ := doRequest(t, app, http.MethodPut, "/expense/"+expense.ID+"/approve", employeeToken, nil)
		require.Equal(t, http.StatusForbidden, status)
	})
	t.Run(`admin cannot submit`, func(t *testing.T) {
		status, _ := doRequest(t, app, http.MethodPost, "/expense", adminToken, expenseapimodels.ExpenseData{
			Month: "2025-01", Category: "food", Description: "Lunch", Amount: &amount,
		})
		require.Equal(t, http.StatusForbidden, status)
	})
	t.Run(`bad id`, func(t *testing.T) {
		status, _ := doRequest(t, app, http.MethodGet, "/expense/not-a-uuid", adminToken, nil)
		require.Equal(t, http.StatusBadRequest, status)
	})
	t.Run(`approve once`, func(t *testing.T) {
		status, resp := doRequest(t, app, http.MethodPut, "/expense/"+expense.ID+"/approve", adminToken, nil)
		require.Equal(t, http.StatusOK, status, resp.Message)
		var approved expenseapimodels.ExpenseView
		require.Nil(t, json.Unmarshal(resp.Data, &approved))
		require.Equal(t, "approved", string(approved.Status))

		status, _ = doRequest(t, app, http.MethodPut, "/expense/"+expense.ID+"/reject", adminToken,
			expenseapimodels.RejectRequest{RejectionReason: "late"})
		require.Equal(t, http.StatusConflict, status)
	})
	t.Run(`employee notified`, func(t *testing.T) {
		status, resp := doRequest(t, app, http.MethodGet, "/notification/unread-count", employeeToken, nil)
		require.Equal(t, http.StatusOK, status)
		var count notificationapimodels.UnreadCount
		require.Nil(t, json.Unmarshal(resp.Data, &count))
		require.Equal(t, int64(1), count.UnreadCount)

		status, _ = doRequest(t, app, http.MethodPut, "/notification/read-all", employeeToken, nil)
		require.Equal(t, http.StatusOK, status)
		_, resp = doRequest(t, app, http.MethodGet, "/notification/unread-count", employeeToken, nil)
		require.Nil(t, json.Unmarshal(resp.Data, &count))
		require.Equal(t, int64(0), count.UnreadCount)
	})
	t.Run(`export for admin only`, func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/expense/export", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)
		res, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, xlsxContentType, res.Header.Get(fiber.HeaderContentType))

		status, _ := doRequest(t, app, http.MethodGet, "/expense/export", employeeToken, nil)
		require.Equal(t, http.StatusForbidden, status)
	})
}

func TestSalarySlipApi(t *testing.T) {
	app := newTestApp(t)
	adminToken := signup(t, app, authapimodels.SignupRequest{Name: "Admin", Email: "admin@example.com", Password: "secret1", Role: "admin"})
	employeeToken := signup(t, app, authapimodels.SignupRequest{Name: "John Doe", Email: "john@example.com", Password: "secret1"})

	basic, allowances, deductions := 5000.0, 200.0, 150.0
	request := salaryslipapimodels.SalarySlipCreate{
		EmployeeEmail: "john@example.com",
		Month:         "2025-01",
		BasicSalary:   &basic,
		Allowances:    &allowances,
		Deductions:    &deductions,
	}
	status, resp := doRequest(t, app, http.MethodPost, "/salary-slip", adminToken, request)
	require.Equal(t, http.StatusOK, status, resp.Message)
	var slip salaryslipapimodels.SalarySlipView
	require.Nil(t, json.Unmarshal(resp.Data, &slip))
	require.Equal(t, 5050.0, slip.NetSalary)

	t.Run(`duplicate month`, func(t *testing.T) {
		status, _ := doRequest(t, app, http.MethodPost, "/salary-slip", adminToken, request)
		require.Equal(t, http.StatusConflict, status)
	})
	t.Run(`employee cannot create`, func(t *testing.T) {
		status, _ := doRequest(t, app, http.MethodPost, "/salary-slip", employeeToken, request)
		require.Equal(t, http.StatusForbidden, status)
	})
	t.Run(`employee sees own slip`, func(t *testing.T) {
		status, resp := doRequest(t, app, http.MethodGet, "/salary-slip", employeeToken, nil)
		require.Equal(t, http.StatusOK, status)
		var list []salaryslipapimodels.SalarySlipView
		require.Nil(t, json.Unmarshal(resp.Data, &list))
		require.Len(t, list, 1)
		require.Equal(t, slip.ID, list[0].ID)
	})
	t.Run(`pdf download`, func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/salary-slip/"+slip.ID+"/pdf", nil)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+employeeToken)
		res, err := app.Test(req, -1)
		require.Nil(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode)
		require.Equal(t, "application/pdf", res.Header.Get(fiber.HeaderContentType))
		require.Contains(t, res.Header.Get(fiber.HeaderContentDisposition), "salary-slip-2025-01.pdf")
	})
	t.Run(`update recomputes net`, func(t *testing.T) {
		newDeductions := 500.0
		status, resp := doRequest(t, app, http.MethodPut, "/salary-slip/"+slip.ID, adminToken,
			salaryslipapimodels.SalarySlipUpdate{Deductions: &newDeductions})
		require.Equal(t, http.StatusOK, status, resp.Message)
		var updated salaryslipapimodels.SalarySlipView
		require.Nil(t, json.Unmarshal(resp.Data, &updated))
		require.Equal(t, 4700.0, updated.NetSalary)
	})
	t.Run(`employees list for admin`, func(t *testing.T) {
		status, _ := doRequest(t, app, http.MethodGet, "/users/employees", adminToken, nil)
		require.Equal(t, http.StatusOK, status)
		status, _ = doRequest(t, app, http.MethodGet, "/users/employees", employeeToken, nil)
		require.Equal(t, http.StatusForbidden, status)
	})
}
