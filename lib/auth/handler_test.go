package authhandler

import (
	"context"
	"payroll-backend/config"
	"payroll-backend/db/dbtest"
	"payroll-backend/lib/email"
	usershandler "payroll-backend/lib/users"
	usersstore "payroll-backend/lib/users/store"
	apperrors "payroll-backend/lib/utils/app-errors"
	"payroll-backend/models"
	authapimodels "payroll-backend/models/api/auth"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu   sync.Mutex
	msgs []email.Message
}

func (f *fakeMailer) Dispatch(msg email.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func (f *fakeMailer) Stop(ctx context.Context) {}

func TestAuthHandler(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"
	config.Conf.Auth.JWTExpireInSec = 60
	defer func() { config.Conf = nil }()

	conn := dbtest.New(t)
	mailer := &fakeMailer{}
	handler := NewInstance(usershandler.NewInstance(conn), usersstore.NewInstance(conn), mailer)

	t.Run(`signup check`, func(t *testing.T) {
		resp, err := handler.Signup(authapimodels.SignupRequest{
			Name:     "John Doe",
			Email:    "John@example.com",
			Password: "secret1",
		})
		require.Nil(t, err)
		require.NotEmpty(t, resp.Token)
		require.Equal(t, models.EmployeeRole, resp.User.Role)
		require.Len(t, mailer.msgs, 1)
		require.True(t, strings.Contains(mailer.msgs[0].Subject, "New User Registration"))
	})

	t.Run(`second admin signup check`, func(t *testing.T) {
		_, err := handler.Signup(authapimodels.SignupRequest{Name: "Admin", Email: "admin@example.com", Password: "secret1", Role: models.AdminRole})
		require.Nil(t, err)
		_, err = handler.Signup(authapimodels.SignupRequest{Name: "Admin 2", Email: "admin2@example.com", Password: "secret1", Role: models.AdminRole})
		require.True(t, apperrors.Is(err, apperrors.KindConflict))
	})

	t.Run(`login check`, func(t *testing.T) {
		resp, err := handler.Login("JOHN@example.com", "secret1")
		require.Nil(t, err)
		require.NotEmpty(t, resp.Token)
		require.Equal(t, "john@example.com", resp.User.Email)

		me, err := handler.Me(resp.User.ID)
		require.Nil(t, err)
		require.Equal(t, "John Doe", me.Name)

		_, err = handler.Login("john@example.com", "wrong-password")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = handler.Login("nobody@example.com", "secret1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
