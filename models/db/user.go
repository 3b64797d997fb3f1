package dbmodels

import (
	"payroll-backend/models"
	usersapimodels "payroll-backend/models/api/users"
	"strings"
)

type User struct {
	BaseModel
	Name     string          `gorm:"type:varchar(150)"`
	Email    string          `gorm:"type:varchar(255);uniqueIndex:idx_user_email"`
	Password string          `gorm:"type:varchar(128)"`
	Role     models.UserRole `gorm:"type:varchar(20);uniqueIndex:idx_single_admin,where:role = 'admin'"`
}

func (r User) ToModel() usersapimodels.UserView {
	return usersapimodels.UserView{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Role:      r.Role,
		RoleName:  r.Role.ToHuman(),
		CreatedAt: r.CreatedAt,
	}
}

func (r User) ToShort() usersapimodels.UserShortView {
	return usersapimodels.UserShortView{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
	}
}

// NormalizeEmail почта хранится в нижнем регистре
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
