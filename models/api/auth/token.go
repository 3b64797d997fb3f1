package authapimodels

import usersapimodels "payroll-backend/models/api/users"

type JWTResponse struct {
	Token string                  `json:"token"`
	User  usersapimodels.UserView `json:"user"`
}
