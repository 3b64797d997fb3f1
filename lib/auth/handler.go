package authhandler

import (
	"payroll-backend/db"
	"payroll-backend/lib/email"
	usershandler "payroll-backend/lib/users"
	usersstore "payroll-backend/lib/users/store"
	apperrors "payroll-backend/lib/utils/app-errors"
	authutils "payroll-backend/lib/utils/auth-utils"
	authapimodels "payroll-backend/models/api/auth"
	usersapimodels "payroll-backend/models/api/users"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidCredentials = errors.New("неверная почта или пароль")

type Provider interface {
	Signup(request authapimodels.SignupRequest) (authapimodels.JWTResponse, error)
	Login(email, password string) (authapimodels.JWTResponse, error)
	Me(userID string) (usersapimodels.UserView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(usershandler.Instance, usersstore.NewInstance(db.DB), email.Instance)
}

func NewInstance(users usershandler.Provider, userStore usersstore.Provider, mailer email.Provider) Provider {
	return impl{
		users:     users,
		userStore: userStore,
		mailer:    mailer,
	}
}

type impl struct {
	users     usershandler.Provider
	userStore usersstore.Provider
	mailer    email.Provider
}

func (i impl) Signup(request authapimodels.SignupRequest) (authapimodels.JWTResponse, error) {
	user, err := i.users.Create(usersapimodels.UserCreate{
		Name:     request.Name,
		Email:    request.Email,
		Password: request.Password,
		Role:     request.Role,
	})
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	i.dispatch(email.RegistrationNotification(user.Name, user.Email, user.Role))
	return i.issue(user)
}

func (i impl) Login(emailAddr, password string) (authapimodels.JWTResponse, error) {
	rec, err := i.userStore.FindByEmail(emailAddr)
	if err != nil {
		log.WithField("email", emailAddr).WithError(err).Error("ошибка поиска пользователя")
		return authapimodels.JWTResponse{}, apperrors.Persistence(err, "ошибка поиска пользователя")
	}
	if rec == nil || !authutils.CheckPassword(rec.Password, password) {
		return authapimodels.JWTResponse{}, ErrInvalidCredentials
	}
	user := rec.ToModel()
	i.dispatch(email.LoginNotification(user.Name, user.Email, user.Role))
	return i.issue(user)
}

func (i impl) Me(userID string) (usersapimodels.UserView, error) {
	return i.users.GetByID(userID)
}

func (i impl) issue(user usersapimodels.UserView) (authapimodels.JWTResponse, error) {
	token, err := authutils.GetToken(user.ID, user.Name, user.Email, user.Role)
	if err != nil {
		log.WithField("user_id", user.ID).WithError(err).Error("ошибка формирования токена")
		return authapimodels.JWTResponse{}, apperrors.Persistence(err, "ошибка формирования токена")
	}
	return authapimodels.JWTResponse{
		Token: token,
		User:  user,
	}, nil
}

func (i impl) dispatch(msg email.Message) {
	if i.mailer == nil {
		return
	}
	i.mailer.Dispatch(msg)
}
